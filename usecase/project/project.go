package project

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

// DeletedMessage is the confirmation string returned by DeleteProject.
// Kept as a plain string for compatibility with existing clients.
const DeletedMessage = "Project deleted successfully."

type UseCase struct {
	projects repository.ProjectRepository
	events   usecase.EventPublisher
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, events usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		events:   events,
		logger:   logger,
	}
}

func (uc *UseCase) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := uc.projects.List(ctx)
	if err != nil {
		return nil, uc.wrapStore("failed to list projects", err)
	}
	return projects, nil
}

func (uc *UseCase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, uc.wrapStore("failed to load project", err)
	}
	return project, nil
}

// CreateProject validates the input, persists the record and publishes
// PROJECT_CREATED. A validation failure leaves no store or bus side
// effects; a store failure publishes nothing.
func (uc *UseCase) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if strings.TrimSpace(project.Name) == "" || strings.TrimSpace(project.Description) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "project name and description must not be empty")
	}

	created, err := uc.projects.Create(ctx, project)
	if err != nil {
		return nil, uc.wrapStore("failed to create project", err)
	}

	uc.events.Publish(domain.EventProjectCreated, created)
	uc.logger.Info("project created", zap.String("project_id", created.ID))
	return created, nil
}

// UpdateProject merges the patch into the stored record. Only fields
// present in the patch are validated; absent fields retain their value.
func (uc *UseCase) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "project name must not be empty")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "project description must not be empty")
	}

	updated, err := uc.projects.Update(ctx, id, patch)
	if err != nil {
		return nil, uc.wrapStore("failed to update project", err)
	}

	uc.events.Publish(domain.EventProjectUpdated, updated)
	uc.logger.Info("project updated", zap.String("project_id", id))
	return updated, nil
}

// DeleteProject removes the record and publishes PROJECT_DELETED with
// the id. Deleting an id that does not exist succeeds. Tasks referencing
// the project are left untouched.
func (uc *UseCase) DeleteProject(ctx context.Context, id string) (string, error) {
	if err := uc.projects.Delete(ctx, id); err != nil {
		return "", uc.wrapStore("failed to delete project", err)
	}

	uc.events.Publish(domain.EventProjectDeleted, id)
	uc.logger.Info("project deleted", zap.String("project_id", id))
	return DeletedMessage, nil
}

// wrapStore classifies unexpected persistence failures as STORE errors
// while letting already-classified domain errors pass through. The
// underlying cause is logged here because the gateway strips it from
// client responses.
func (uc *UseCase) wrapStore(message string, err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	uc.logger.Error(message, zap.Error(err))
	return domain.WrapError(domain.ErrCodeStore, message, err)
}
