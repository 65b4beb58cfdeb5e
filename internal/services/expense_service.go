package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
)

type ExpenseService struct {
	Repo *repositories.ExpenseRepository
}

func NewExpenseService(repo *repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{Repo: repo}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if req.Description == "" {
		return nil, errors.New("description is required")
	}
	if req.Amount < 0 {
		return nil, errors.New("amount must not be negative")
	}
	if err := validateRecurrence(req.Recurrence); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      roundCents(req.Amount),
		Currency:    req.Currency,
		Date:        req.Date,
		ProjectID:   req.ProjectID,
		Recurrence:  req.Recurrence,
		Receipt:     req.Receipt,
	}
	if expense.Recurrence != models.RecurrenceNone {
		expense.NextDueDate = NextDueDate(expense.Date, expense.Recurrence)
	}

	if err := s.Repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.Repo.List(ctx)
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, req *models.UpdateExpenseRequest) (*models.Expense, error) {
	if req.Description == "" {
		return nil, errors.New("description is required")
	}
	if err := validateRecurrence(req.Recurrence); err != nil {
		return nil, err
	}

	expense, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Description = req.Description
	expense.Category = req.Category
	expense.Amount = roundCents(req.Amount)
	expense.Currency = req.Currency
	expense.Date = req.Date
	expense.ProjectID = req.ProjectID
	expense.Recurrence = req.Recurrence
	expense.Receipt = req.Receipt
	if expense.Recurrence == models.RecurrenceNone {
		expense.NextDueDate = time.Time{}
	} else {
		expense.NextDueDate = NextDueDate(expense.Date, expense.Recurrence)
	}

	if err := s.Repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// RollDue advances every recurring expense whose due date has passed,
// creating a concrete expense entry per elapsed period.
func (s *ExpenseService) RollDue(ctx context.Context, now time.Time) ([]*models.Expense, error) {
	recurring, err := s.Repo.ListRecurring(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]*models.Expense, 0)
	for _, template := range recurring {
		for !template.NextDueDate.IsZero() && !template.NextDueDate.After(now) {
			entry := &models.Expense{
				Description: template.Description,
				Category:    template.Category,
				Amount:      template.Amount,
				Currency:    template.Currency,
				Date:        template.NextDueDate,
				ProjectID:   template.ProjectID,
			}
			if err := s.Repo.Create(ctx, entry); err != nil {
				return created, err
			}
			created = append(created, entry)

			template.NextDueDate = NextDueDate(template.NextDueDate, template.Recurrence)
		}
		if err := s.Repo.Update(ctx, template); err != nil {
			return created, err
		}
	}
	return created, nil
}

// NextDueDate returns the next occurrence after from for the interval.
func NextDueDate(from time.Time, recurrence string) time.Time {
	switch recurrence {
	case models.RecurrenceMonthly:
		return from.AddDate(0, 1, 0)
	case models.RecurrenceQuarterly:
		return from.AddDate(0, 3, 0)
	case models.RecurrenceYearly:
		return from.AddDate(1, 0, 0)
	default:
		return time.Time{}
	}
}

func validateRecurrence(recurrence string) error {
	switch recurrence {
	case models.RecurrenceNone, models.RecurrenceMonthly,
		models.RecurrenceQuarterly, models.RecurrenceYearly:
		return nil
	default:
		return fmt.Errorf("unknown recurrence %q", recurrence)
	}
}
