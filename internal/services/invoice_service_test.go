package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"
	"freelance-backend/internal/store"
)

const (
	testQRIBAN = "CH4431999123000889012"
	testQRRef  = "210000000003139471430009017"
)

// newInvoiceHarness builds an invoice service on a throwaway store with a
// saved business profile and one customer.
func newInvoiceHarness(t *testing.T) (*InvoiceService, string) {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	customerRepo := repositories.NewCustomerRepository(st)
	projectRepo := repositories.NewProjectRepository(st)
	invoiceRepo := repositories.NewInvoiceRepository(st)
	profileRepo := repositories.NewProfileRepository(st)

	require.NoError(t, profileRepo.Save(ctx, &models.Profile{
		Name:            "Erika Musterfrau",
		Street:          "Musterstrasse",
		Building:        "7",
		PostalCode:      "8000",
		City:            "Zuerich",
		Country:         "CH",
		Account:         testQRIBAN,
		DefaultCurrency: "CHF",
	}))

	customer := &models.Customer{
		Name:       "Hans Beispiel",
		Street:     "Beispielweg",
		Building:   "12",
		PostalCode: "3000",
		City:       "Bern",
		Country:    "CH",
	}
	require.NoError(t, customerRepo.Create(ctx, customer))

	return NewInvoiceService(invoiceRepo, customerRepo, projectRepo, profileRepo), customer.ID
}

func TestCreateInvoiceComputesItemAmounts(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)

	invoice, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Reference:  testQRRef,
		Items: []models.InvoiceItem{
			{Description: "Consulting", Quantity: 2, UnitPrice: 450.50},
			{Description: "Travel", Quantity: 1, UnitPrice: 99.95},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
	assert.Equal(t, 901.00, invoice.Items[0].Amount)
	assert.Equal(t, 99.95, invoice.Items[1].Amount)
	assert.Equal(t, 1000.95, invoice.TotalAmount)
	// Currency falls back to the profile default.
	assert.Equal(t, "CHF", invoice.Currency)
}

func TestCreateInvoiceRejectsUnknownCurrency(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Currency:   "USD",
		Items:      []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 1}},
	})
	assert.Error(t, err)
}

func TestCreateInvoiceRequiresExistingCustomer(t *testing.T) {
	svc, _ := newInvoiceHarness(t)

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		CustomerID: "no-such-customer",
		Items:      []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 1}},
	})
	assert.Error(t, err)
}

func TestGeneratePayload(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Currency:   "CHF",
		Reference:  testQRRef,
		Message:    "2024-001",
		Items:      []models.InvoiceItem{{Description: "Consulting", Quantity: 1, UnitPrice: 199.95}},
	})
	require.NoError(t, err)

	payload, err := svc.GeneratePayload(ctx, invoice.ID)
	require.NoError(t, err)

	lines := strings.Split(payload, "\n")
	require.Len(t, lines, 31)
	assert.Equal(t, "SPC", lines[0])
	assert.Equal(t, testQRIBAN, lines[3])
	assert.Equal(t, "Erika Musterfrau", lines[5])
	assert.Equal(t, "199.95", lines[17])
	assert.Equal(t, "CHF", lines[18])
	assert.Equal(t, "Hans Beispiel", lines[20])
	assert.Equal(t, "QRR", lines[26])
	assert.Equal(t, testQRRef, lines[27])
	assert.Equal(t, "2024-001", lines[28])
}

func TestGeneratePayloadOpenAmount(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Reference:  testQRRef,
		OpenAmount: true,
	})
	require.NoError(t, err)

	payload, err := svc.GeneratePayload(ctx, invoice.ID)
	require.NoError(t, err)

	lines := strings.Split(payload, "\n")
	assert.Empty(t, lines[17])
}

func TestGeneratePayloadRejectsBadChecksum(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)
	ctx := context.Background()

	bad := testQRRef[:26] + "8" // correct check digit is 7
	invoice, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Reference:  bad,
		Items:      []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GeneratePayload(ctx, invoice.ID)
	assert.Error(t, err)
}

func TestUpdateInvoiceBlockedWhenPaid(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Reference:  testQRRef,
		Items:      []models.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, invoice.ID, models.InvoiceStatusPaid)
	require.NoError(t, err)

	_, err = svc.UpdateInvoice(ctx, invoice.ID, &models.UpdateInvoiceRequest{
		CustomerID: customerID,
		Items:      []models.InvoiceItem{{Description: "y", Quantity: 1, UnitPrice: 200}},
	})
	assert.Error(t, err)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, customerID := newInvoiceHarness(t)
	ctx := context.Background()

	invoice, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		CustomerID: customerID,
		Reference:  testQRRef,
		OpenAmount: true,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, invoice.ID, "overdue")
	assert.Error(t, err)
}

func TestValidateReference(t *testing.T) {
	svc, _ := newInvoiceHarness(t)
	ctx := context.Background()

	cls, err := svc.ValidateReference(ctx, testQRRef)
	require.NoError(t, err)
	assert.True(t, cls.Valid)
	assert.Equal(t, "QRR", string(cls.Scheme))

	// A SCOR reference never fits a QR-IBAN account.
	cls, err = svc.ValidateReference(ctx, "RF18539007547034")
	require.NoError(t, err)
	assert.False(t, cls.Valid)
}
