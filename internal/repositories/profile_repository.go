package repositories

import (
	"context"

	"freelance-backend/internal/models"
	"freelance-backend/internal/store"
	"freelance-backend/internal/timeutil"
)

const (
	settingsCollection = "settings"
	profileID          = "business_profile"
)

// ProfileRepository stores the single business-profile record that supplies
// the creditor side of every QR-bill.
type ProfileRepository struct {
	Store *store.Store
}

func NewProfileRepository(s *store.Store) *ProfileRepository {
	return &ProfileRepository{Store: s}
}

// Get returns the profile, or an empty one if none has been saved yet.
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := r.Store.Read(settingsCollection, profileID, &profile); err != nil {
		if err == store.ErrNotFound {
			return &models.Profile{DefaultCurrency: "CHF"}, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Save persists the profile
func (r *ProfileRepository) Save(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = timeutil.Now()
	return r.Store.Write(settingsCollection, profileID, profile)
}
