package repository

import (
	"context"

	"github.com/taskboard/backend/domain"
)

// TaskFilter narrows task listings. Equality on ProjectID is the only
// supported predicate.
type TaskFilter struct {
	ProjectID string
}

type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
