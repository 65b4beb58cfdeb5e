package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"freelance-backend/internal/models"
	"freelance-backend/internal/store"
	"freelance-backend/internal/timeutil"

	"github.com/google/uuid"
)

const (
	invoiceCollection = "invoices"
	counterCollection = "counters"
	invoiceCounterID  = "invoice_number"
)

type invoiceCounter struct {
	Next int `json:"next"`
}

type InvoiceRepository struct {
	Store *store.Store

	// counterMu serializes invoice-number allocation; the store itself only
	// guarantees atomic single-record writes.
	counterMu sync.Mutex
}

func NewInvoiceRepository(s *store.Store) *InvoiceRepository {
	return &InvoiceRepository{Store: s}
}

// NextInvoiceNumber allocates the next number in the INV-%06d sequence
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	r.counterMu.Lock()
	defer r.counterMu.Unlock()

	var counter invoiceCounter
	if err := r.Store.Read(counterCollection, invoiceCounterID, &counter); err != nil {
		if err != store.ErrNotFound {
			return "", fmt.Errorf("failed to read invoice counter: %w", err)
		}
		counter.Next = 0
	}
	counter.Next++
	if err := r.Store.Write(counterCollection, invoiceCounterID, counter); err != nil {
		return "", fmt.Errorf("failed to advance invoice counter: %w", err)
	}
	return fmt.Sprintf("INV-%06d", counter.Next), nil
}

// Create assigns an id, number and timestamps and persists the invoice
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.InvoiceNumber == "" {
		number, err := r.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
	}
	invoice.ID = uuid.NewString()
	invoice.CreatedAt = timeutil.Now()
	invoice.UpdatedAt = invoice.CreatedAt
	return r.Store.Write(invoiceCollection, invoice.ID, invoice)
}

// Get retrieves an invoice by ID
func (r *InvoiceRepository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.Store.Read(invoiceCollection, id, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByNumber retrieves an invoice by its invoice number
func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, inv := range all {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, store.ErrNotFound
}

// List returns all invoices, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	records, err := r.Store.List(invoiceCollection)
	if err != nil {
		return nil, err
	}

	invoices := make([]*models.Invoice, 0, len(records))
	for _, data := range records {
		var inv models.Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	return invoices, nil
}

// ListByCustomer returns invoices for one customer
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices := make([]*models.Invoice, 0)
	for _, inv := range all {
		if inv.CustomerID == customerID {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

// Update persists the invoice and refreshes its updated_at
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	invoice.UpdatedAt = timeutil.Now()
	return r.Store.Write(invoiceCollection, invoice.ID, invoice)
}

// Delete removes an invoice by ID
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.Store.Delete(invoiceCollection, id)
}
