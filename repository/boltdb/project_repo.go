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

type projectRepository struct {
	client *infra.Client
}

// NewProjectRepository returns a Bolt-backed implementation of ProjectRepository.
func NewProjectRepository(client *infra.Client) repository.ProjectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var projects []domain.Project
	err := r.client.DB().View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(infra.BucketProjects)).ForEach(func(_, v []byte) error {
			var project domain.Project
			if err := json.Unmarshal(v, &project); err != nil {
				return err
			}
			projects = append(projects, project)
			return nil
		})
	})
	return projects, err
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var project domain.Project
	err := r.client.DB().View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(infra.BucketProjects)).Get([]byte(id))
		if raw == nil {
			return domain.ErrProjectNotFound
		}
		return json.Unmarshal(raw, &project)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	raw, err := json.Marshal(project)
	if err != nil {
		return nil, err
	}

	err = r.client.DB().Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(infra.BucketProjects)).Put([]byte(project.ID), raw)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update merges the patch into the stored document inside one write
// transaction, so a single record can never be observed half-updated.
func (r *projectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var project domain.Project
	err := r.client.DB().Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(infra.BucketProjects))
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return domain.ErrProjectNotFound
		}
		if err := json.Unmarshal(raw, &project); err != nil {
			return err
		}
		applyProjectPatch(&project, patch)
		merged, err := json.Marshal(&project)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), merged)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete is idempotent: removing an id that is already gone succeeds.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.client.DB().Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(infra.BucketProjects)).Delete([]byte(id))
	})
}

func applyProjectPatch(project *domain.Project, patch domain.ProjectPatch) {
	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Department != nil {
		project.Department = *patch.Department
	}
	if patch.BackgroundColor != nil {
		project.BackgroundColor = *patch.BackgroundColor
	}
	if patch.BackgroundImage != nil {
		project.BackgroundImage = *patch.BackgroundImage
	}
	if patch.BackgroundColorCard != nil {
		project.BackgroundColorCard = *patch.BackgroundColorCard
	}
	if patch.BackgroundCard != nil {
		project.BackgroundCard = *patch.BackgroundCard
	}
	if patch.Priority != nil {
		project.Priority = *patch.Priority
	}
	if patch.DateAccess != nil {
		project.DateAccess = *patch.DateAccess
	}
}
