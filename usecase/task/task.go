package task

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

// DeletedMessage is the confirmation string returned by DeleteTask.
const DeletedMessage = "Task deleted successfully."

type UseCase struct {
	tasks  repository.TaskRepository
	events usecase.EventPublisher
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		events: events,
		logger: logger,
	}
}

func (uc *UseCase) ListTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{ProjectID: projectID})
	if err != nil {
		return nil, uc.wrapStore("failed to list tasks", err)
	}
	return tasks, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, uc.wrapStore("failed to load task", err)
	}
	return task, nil
}

// CreateTask validates the input, persists the record and publishes
// TASK_CREATED. The project reference is not checked: a task may point
// at a project that no longer exists.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(task.Title) == "" || strings.TrimSpace(task.Description) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title and description must not be empty")
	}
	if strings.TrimSpace(task.ProjectID) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task must reference a project")
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, uc.wrapStore("failed to create task", err)
	}

	uc.events.Publish(domain.EventTaskCreated, created)
	uc.logger.Info("task created",
		zap.String("task_id", created.ID),
		zap.String("project_id", created.ProjectID),
	)
	return created, nil
}

// UpdateTask merges the patch into the stored record. Only fields
// present in the patch are validated.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task title must not be empty")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "task description must not be empty")
	}

	updated, err := uc.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, uc.wrapStore("failed to update task", err)
	}

	uc.events.Publish(domain.EventTaskUpdated, updated)
	uc.logger.Info("task updated", zap.String("task_id", id))
	return updated, nil
}

// DeleteTask removes the record and publishes TASK_DELETED with the id.
// Deleting an id that does not exist succeeds.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) (string, error) {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return "", uc.wrapStore("failed to delete task", err)
	}

	uc.events.Publish(domain.EventTaskDeleted, id)
	uc.logger.Info("task deleted", zap.String("task_id", id))
	return DeletedMessage, nil
}

func (uc *UseCase) wrapStore(message string, err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	uc.logger.Error(message, zap.Error(err))
	return domain.WrapError(domain.ErrCodeStore, message, err)
}
