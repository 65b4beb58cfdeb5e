package services

import (
	"context"
	"errors"
	"fmt"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
)

type ProjectService struct {
	Repo         *repositories.ProjectRepository
	CustomerRepo *repositories.CustomerRepository
}

func NewProjectService(repo *repositories.ProjectRepository, customerRepo *repositories.CustomerRepository) *ProjectService {
	return &ProjectService{Repo: repo, CustomerRepo: customerRepo}
}

func (s *ProjectService) CreateProject(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.CustomerID != "" {
		if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer not found: %w", err)
		}
	}

	project := &models.Project{
		Name:        req.Name,
		CustomerID:  req.CustomerID,
		Status:      models.ProjectStatusActive,
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
	}

	if err := s.Repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*models.Project, error) {
	return s.Repo.List(ctx)
}

func (s *ProjectService) ListByCustomer(ctx context.Context, customerID string) ([]*models.Project, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, req *models.UpdateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	project, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		switch req.Status {
		case models.ProjectStatusActive, models.ProjectStatusOnHold,
			models.ProjectStatusDone, models.ProjectStatusArchived:
			project.Status = req.Status
		default:
			return nil, fmt.Errorf("unknown project status %q", req.Status)
		}
	}

	project.Name = req.Name
	project.CustomerID = req.CustomerID
	project.HourlyRate = req.HourlyRate
	project.Description = req.Description

	if err := s.Repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
