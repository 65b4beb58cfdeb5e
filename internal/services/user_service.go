package services

import (
	"context"
	"errors"
	"strings"

	"freelance-backend/internal/auth"
	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
	"freelance-backend/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	Repo *repositories.UserRepository
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already registered")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// First account becomes the admin.
	role := "user"
	existing, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		role = "admin"
	}

	user := &models.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errors.New("account suspended")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) ToggleActive(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
