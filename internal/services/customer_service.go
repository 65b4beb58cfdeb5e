package services

import (
	"context"
	"errors"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	// Validate input
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	customer := &models.Customer{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Street:     req.Street,
		Building:   req.Building,
		PostalCode: req.PostalCode,
		City:       req.City,
		Country:    req.Country,
		Notes:      req.Notes,
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	customer, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Street = req.Street
	customer.Building = req.Building
	customer.PostalCode = req.PostalCode
	customer.City = req.City
	customer.Country = req.Country
	customer.Notes = req.Notes

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
