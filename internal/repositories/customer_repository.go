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

const customerCollection = "customers"

type CustomerRepository struct {
	Store *store.Store
}

func NewCustomerRepository(s *store.Store) *CustomerRepository {
	return &CustomerRepository{Store: s}
}

// Create assigns an id and timestamps and persists the customer
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	customer.ID = uuid.NewString()
	customer.CreatedAt = timeutil.Now()
	customer.UpdatedAt = customer.CreatedAt
	return r.Store.Write(customerCollection, customer.ID, customer)
}

// Get retrieves a customer by ID
func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.Store.Read(customerCollection, id, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns all customers sorted by name
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	records, err := r.Store.List(customerCollection)
	if err != nil {
		return nil, err
	}

	customers := make([]*models.Customer, 0, len(records))
	for _, data := range records {
		var c models.Customer
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

// Update persists the customer and refreshes its updated_at
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = timeutil.Now()
	return r.Store.Write(customerCollection, customer.ID, customer)
}

// Delete removes a customer by ID
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(customerCollection, id)
}
