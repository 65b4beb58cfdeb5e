package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"freelance-backend/internal/models"
	"freelance-backend/internal/store"
	"freelance-backend/internal/timeutil"

	"github.com/google/uuid"
)

const userCollection = "users"

type UserRepository struct {
	Store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{Store: s}
}

// Create assigns an id and timestamps and persists the user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = timeutil.Now()
	user.UpdatedAt = user.CreatedAt
	return r.Store.Write(userCollection, user.ID, user)
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.Store.Read(userCollection, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitive
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	records, err := r.Store.List(userCollection)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(records))
	for _, data := range records {
		var u models.User
		if err := json.Unmarshal(data, &u); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, nil
}

// Update persists the user and refreshes its updated_at
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = timeutil.Now()
	return r.Store.Write(userCollection, user.ID, user)
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(userCollection, id)
}
