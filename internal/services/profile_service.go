package services

import (
	"context"
	"errors"

	"freelance-backend/internal/models"
	"freelance-backend/internal/qrbill"
	"freelance-backend/internal/repositories"
)

type ProfileService struct {
	Repo *repositories.ProfileRepository
}

func NewProfileService(repo *repositories.ProfileRepository) *ProfileService {
	return &ProfileService{Repo: repo}
}

func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	return s.Repo.Get(ctx)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if req.Name == "" {
		return nil, errors.New("business name is required")
	}
	if req.DefaultCurrency != "" && req.DefaultCurrency != "CHF" && req.DefaultCurrency != "EUR" {
		return nil, errors.New("default currency must be CHF or EUR")
	}

	profile, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Email = req.Email
	profile.Phone = req.Phone
	profile.Street = req.Street
	profile.Building = req.Building
	profile.PostalCode = req.PostalCode
	profile.City = req.City
	profile.Country = req.Country
	profile.Account = req.Account
	profile.VATNumber = req.VATNumber
	if req.DefaultCurrency != "" {
		profile.DefaultCurrency = req.DefaultCurrency
	}

	if err := s.Repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AccountInfo tells the editor whether the configured account demands QRR
// references, so it can adjust the reference field before save.
func (s *ProfileService) AccountInfo(ctx context.Context) (map[string]interface{}, error) {
	profile, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"account":  profile.Account,
		"qr_iban":  qrbill.IsQRIBAN(profile.Account),
		"currency": profile.DefaultCurrency,
	}, nil
}
