package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-backend/internal/models"
	"freelance-backend/internal/store"
)

func TestInvoiceNumberSequence(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	repo := NewInvoiceRepository(st)
	ctx := context.Background()

	first := &models.Invoice{Status: models.InvoiceStatusDraft}
	second := &models.Invoice{Status: models.InvoiceStatusDraft}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, "INV-000001", first.InvoiceNumber)
	assert.Equal(t, "INV-000002", second.InvoiceNumber)

	// Deleting an invoice never frees its number.
	require.NoError(t, repo.Delete(ctx, second.ID))
	third := &models.Invoice{Status: models.InvoiceStatusDraft}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, "INV-000003", third.InvoiceNumber)
}

func TestGetByNumber(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	repo := NewInvoiceRepository(st)
	ctx := context.Background()

	invoice := &models.Invoice{Status: models.InvoiceStatusDraft}
	require.NoError(t, repo.Create(ctx, invoice))

	got, err := repo.GetByNumber(ctx, invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, got.ID)

	_, err = repo.GetByNumber(ctx, "INV-999999")
	assert.Equal(t, store.ErrNotFound, err)
}
