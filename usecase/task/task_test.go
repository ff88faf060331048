package task

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/taskboard/backend/domain"
	infra "github.com/taskboard/backend/internal/infrastructure/boltdb"
	"github.com/taskboard/backend/repository"
	boltRepo "github.com/taskboard/backend/repository/boltdb"
)

type recordedEvent struct {
	kind    domain.EventKind
	payload interface{}
}

type capturingPublisher struct {
	events []recordedEvent
}

func (p *capturingPublisher) Publish(kind domain.EventKind, payload interface{}) {
	p.events = append(p.events, recordedEvent{kind: kind, payload: payload})
}

func newTestUseCase(t *testing.T) (*UseCase, repository.TaskRepository, *capturingPublisher) {
	t.Helper()

	client, err := infra.Open(filepath.Join(t.TempDir(), "entities.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	repo := boltRepo.NewTaskRepository(client)
	publisher := &capturingPublisher{}
	return New(repo, publisher, nil), repo, publisher
}

func TestCreateTaskPublishesEvent(t *testing.T) {
	uc, _, publisher := newTestUseCase(t)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		ProjectID:   "p1",
		Title:       "review",
		Description: "review the board",
		EndDate:     "2026-09-15",
		Responsible: []string{"ana"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}

	if len(publisher.events) != 1 || publisher.events[0].kind != domain.EventTaskCreated {
		t.Fatalf("expected one TASK_CREATED event, got %+v", publisher.events)
	}
}

func TestCreateTaskRejectsBlankTitle(t *testing.T) {
	uc, repo, publisher := newTestUseCase(t)

	_, err := uc.CreateTask(context.Background(), &domain.Task{
		ProjectID:   "p1",
		Title:       "",
		Description: "x",
		EndDate:     "2026-09-15",
	})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// No task stored, no event fired.
	if len(publisher.events) != 0 {
		t.Fatalf("no event must be published, got %d", len(publisher.events))
	}
	tasks, err := repo.List(context.Background(), repository.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("nothing must be stored, got %d records", len(tasks))
	}
}

func TestCreateTaskRejectsMissingProject(t *testing.T) {
	uc, _, publisher := newTestUseCase(t)

	_, err := uc.CreateTask(context.Background(), &domain.Task{
		Title:       "t",
		Description: "d",
		EndDate:     "2026-09-15",
	})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("no event must be published, got %d", len(publisher.events))
	}
}

func TestCreateTaskAllowsDanglingProjectReference(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	created, err := uc.CreateTask(context.Background(), &domain.Task{
		ProjectID:   "no-such-project",
		Title:       "t",
		Description: "d",
		EndDate:     "2026-09-15",
	})
	if err != nil {
		t.Fatalf("referential integrity is not enforced, got %v", err)
	}
	if created.ProjectID != "no-such-project" {
		t.Fatalf("project reference must be stored as given")
	}
}

func TestUpdateTaskMergesAndPublishes(t *testing.T) {
	uc, _, publisher := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, &domain.Task{
		ProjectID:   "p1",
		Title:       "review",
		Description: "d",
		EndDate:     "2026-09-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ended := true
	updated, err := uc.UpdateTask(ctx, created.ID, domain.TaskPatch{Ended: &ended})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Ended || updated.Title != "review" {
		t.Fatalf("merge failed: %+v", updated)
	}

	last := publisher.events[len(publisher.events)-1]
	if last.kind != domain.EventTaskUpdated {
		t.Fatalf("expected TASK_UPDATED, got %s", last.kind)
	}
}

func TestDeleteTaskPublishesID(t *testing.T) {
	uc, _, publisher := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, &domain.Task{
		ProjectID:   "p1",
		Title:       "t",
		Description: "d",
		EndDate:     "2026-09-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	confirmation, err := uc.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation != DeletedMessage {
		t.Fatalf("expected confirmation string, got %q", confirmation)
	}

	last := publisher.events[len(publisher.events)-1]
	if last.kind != domain.EventTaskDeleted || last.payload != created.ID {
		t.Fatalf("expected TASK_DELETED with id, got %+v", last)
	}
}
