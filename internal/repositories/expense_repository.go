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

const expenseCollection = "expenses"

type ExpenseRepository struct {
	Store *store.Store
}

func NewExpenseRepository(s *store.Store) *ExpenseRepository {
	return &ExpenseRepository{Store: s}
}

// Create assigns an id and timestamps and persists the expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	expense.ID = uuid.NewString()
	expense.CreatedAt = timeutil.Now()
	expense.UpdatedAt = expense.CreatedAt
	return r.Store.Write(expenseCollection, expense.ID, expense)
}

// Get retrieves an expense by ID
func (r *ExpenseRepository) Get(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	if err := r.Store.Read(expenseCollection, id, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// List returns all expenses, newest date first
func (r *ExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	records, err := r.Store.List(expenseCollection)
	if err != nil {
		return nil, err
	}

	expenses := make([]*models.Expense, 0, len(records))
	for _, data := range records {
		var e models.Expense
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

// ListRecurring returns expenses with a recurrence interval set
func (r *ExpenseRepository) ListRecurring(ctx context.Context) ([]*models.Expense, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses := make([]*models.Expense, 0)
	for _, e := range all {
		if e.Recurrence != models.RecurrenceNone {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

// Update persists the expense and refreshes its updated_at
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = timeutil.Now()
	return r.Store.Write(expenseCollection, expense.ID, expense)
}

// Delete removes an expense by ID
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(expenseCollection, id)
}
