package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
	"freelance-backend/internal/store"
)

func newExpenseService(t *testing.T) *ExpenseService {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	return NewExpenseService(repositories.NewExpenseRepository(st))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	from := date(2025, time.January, 15)

	assert.Equal(t, date(2025, time.February, 15), NextDueDate(from, models.RecurrenceMonthly))
	assert.Equal(t, date(2025, time.April, 15), NextDueDate(from, models.RecurrenceQuarterly))
	assert.Equal(t, date(2026, time.January, 15), NextDueDate(from, models.RecurrenceYearly))
	assert.True(t, NextDueDate(from, models.RecurrenceNone).IsZero())
}

func TestCreateExpenseSetsNextDueDate(t *testing.T) {
	svc := newExpenseService(t)

	expense, err := svc.CreateExpense(context.Background(), &models.CreateExpenseRequest{
		Description: "Hosting",
		Amount:      29.90,
		Currency:    "CHF",
		Date:        date(2025, time.January, 15),
		Recurrence:  models.RecurrenceMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.February, 15), expense.NextDueDate)

	oneOff, err := svc.CreateExpense(context.Background(), &models.CreateExpenseRequest{
		Description: "Keyboard",
		Amount:      120,
		Currency:    "CHF",
		Date:        date(2025, time.January, 15),
	})
	require.NoError(t, err)
	assert.True(t, oneOff.NextDueDate.IsZero())
}

func TestCreateExpenseRejectsUnknownRecurrence(t *testing.T) {
	svc := newExpenseService(t)

	_, err := svc.CreateExpense(context.Background(), &models.CreateExpenseRequest{
		Description: "Hosting",
		Amount:      29.90,
		Recurrence:  "weekly",
	})
	assert.Error(t, err)
}

func TestRollDueCreatesEntryPerElapsedPeriod(t *testing.T) {
	svc := newExpenseService(t)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, &models.CreateExpenseRequest{
		Description: "Hosting",
		Amount:      29.90,
		Currency:    "CHF",
		Date:        date(2025, time.January, 15),
		Recurrence:  models.RecurrenceMonthly,
	})
	require.NoError(t, err)

	created, err := svc.RollDue(ctx, date(2025, time.April, 20))
	require.NoError(t, err)

	require.Len(t, created, 3)
	assert.Equal(t, date(2025, time.February, 15), created[0].Date)
	assert.Equal(t, date(2025, time.March, 15), created[1].Date)
	assert.Equal(t, date(2025, time.April, 15), created[2].Date)
	for _, entry := range created {
		assert.Equal(t, models.RecurrenceNone, entry.Recurrence)
		assert.Equal(t, 29.90, entry.Amount)
	}

	// The template advanced past now; a second roll is a no-op.
	again, err := svc.RollDue(ctx, date(2025, time.April, 20))
	require.NoError(t, err)
	assert.Empty(t, again)
}
