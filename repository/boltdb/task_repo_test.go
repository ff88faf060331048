package boltdb

import (
	"context"
	"reflect"
	"testing"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

func TestTaskListFiltersByProjectID(t *testing.T) {
	repo := NewTaskRepository(newTestClient(t))
	ctx := context.Background()

	mk := func(projectID, title string) {
		t.Helper()
		_, err := repo.Create(ctx, &domain.Task{
			ProjectID:   projectID,
			Title:       title,
			Description: "d",
			EndDate:     "2026-09-01",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	mk("p1", "a")
	mk("p1", "b")
	mk("p2", "c")

	tasks, err := repo.List(ctx, repository.TaskFilter{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks for p1, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID != "p1" {
			t.Fatalf("filter leaked task %+v", task)
		}
	}
}

func TestTaskUpdateMergesResponsibleList(t *testing.T) {
	repo := NewTaskRepository(newTestClient(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Task{
		ProjectID:   "p1",
		Title:       "review",
		Description: "review the board",
		Responsible: []string{"ana"},
		EndDate:     "2026-09-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	people := []string{"ana", "luis"}
	ended := true
	updated, err := repo.Update(ctx, created.ID, domain.TaskPatch{
		Responsible: &people,
		Ended:       &ended,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(updated.Responsible, people) {
		t.Fatalf("expected responsible %v, got %v", people, updated.Responsible)
	}
	if !updated.Ended {
		t.Fatalf("expected ended flag set")
	}
	if updated.Title != "review" || updated.EndDate != "2026-09-01" {
		t.Fatalf("unpatched fields must keep their value: %+v", updated)
	}
}

func TestTaskSurvivesProjectDeletion(t *testing.T) {
	client := newTestClient(t)
	projects := NewProjectRepository(client)
	tasks := NewTaskRepository(client)
	ctx := context.Background()

	project, err := projects.Create(ctx, &domain.Project{Name: "p", Description: "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, err := tasks.Create(ctx, &domain.Task{
		ProjectID:   project.ID,
		Title:       "t",
		Description: "d",
		EndDate:     "2026-09-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := projects.Delete(ctx, project.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No cascade: the task remains with a dangling project reference.
	remaining, err := tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("expected task to survive, got %v", err)
	}
	if remaining.ProjectID != project.ID {
		t.Fatalf("project reference must be preserved")
	}
}

func TestTaskDeleteIsIdempotent(t *testing.T) {
	repo := NewTaskRepository(newTestClient(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Task{
		ProjectID:   "p1",
		Title:       "t",
		Description: "d",
		EndDate:     "2026-09-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second delete must not fail: %v", err)
	}
}
