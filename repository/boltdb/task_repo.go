package boltdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/taskboard/backend/domain"
	infra "github.com/taskboard/backend/internal/infrastructure/boltdb"
	"github.com/taskboard/backend/repository"
)

type taskRepository struct {
	client *infra.Client
}

// NewTaskRepository returns a Bolt-backed implementation of TaskRepository.
func NewTaskRepository(client *infra.Client) repository.TaskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tasks []domain.Task
	err := r.client.DB().View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(infra.BucketTasks)).ForEach(func(_, v []byte) error {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			if filter.ProjectID != "" && task.ProjectID != filter.ProjectID {
				return nil
			}
			tasks = append(tasks, task)
			return nil
		})
	})
	return tasks, err
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task domain.Task
	err := r.client.DB().View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(infra.BucketTasks)).Get([]byte(id))
		if raw == nil {
			return domain.ErrTaskNotFound
		}
		return json.Unmarshal(raw, &task)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	raw, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}

	err = r.client.DB().Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(infra.BucketTasks)).Put([]byte(task.ID), raw)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var task domain.Task
	err := r.client.DB().Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(infra.BucketTasks))
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return domain.ErrTaskNotFound
		}
		if err := json.Unmarshal(raw, &task); err != nil {
			return err
		}
		applyTaskPatch(&task, patch)
		merged, err := json.Marshal(&task)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), merged)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.client.DB().Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(infra.BucketTasks)).Delete([]byte(id))
	})
}

func applyTaskPatch(task *domain.Task, patch domain.TaskPatch) {
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Responsible != nil {
		task.Responsible = *patch.Responsible
	}
	if patch.EndDate != nil {
		task.EndDate = *patch.EndDate
	}
	if patch.Ended != nil {
		task.Ended = *patch.Ended
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.PathFile != nil {
		task.PathFile = *patch.PathFile
	}
}
