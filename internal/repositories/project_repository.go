package repositories

import (
	"context"
	"encoding/json"
	"sort"

	"freelance-backend/internal/models"
	"freelance-backend/internal/store"
	"freelance-backend/internal/timeutil"

	"github.com/google/uuid"
)

const projectCollection = "projects"

type ProjectRepository struct {
	Store *store.Store
}

func NewProjectRepository(s *store.Store) *ProjectRepository {
	return &ProjectRepository{Store: s}
}

// Create assigns an id and timestamps and persists the project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = uuid.NewString()
	project.CreatedAt = timeutil.Now()
	project.UpdatedAt = project.CreatedAt
	return r.Store.Write(projectCollection, project.ID, project)
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.Store.Read(projectCollection, id, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	records, err := r.Store.List(projectCollection)
	if err != nil {
		return nil, err
	}

	projects := make([]*models.Project, 0, len(records))
	for _, data := range records {
		var p models.Project
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

// ListByCustomer returns projects belonging to one customer
func (r *ProjectRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Project, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]*models.Project, 0)
	for _, p := range all {
		if p.CustomerID == customerID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// Update persists the project and refreshes its updated_at
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = timeutil.Now()
	return r.Store.Write(projectCollection, project.ID, project)
}

// Delete removes a project by ID
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(projectCollection, id)
}
