package services

import (
	"context"
	"errors"
	"fmt"

	"freelance-backend/internal/cache"
	"freelance-backend/internal/metrics"
	"freelance-backend/internal/models"
	"freelance-backend/internal/qrbill"
	"freelance-backend/internal/repositories"
)

type InvoiceService struct {
	Repo         *repositories.InvoiceRepository
	CustomerRepo *repositories.CustomerRepository
	ProjectRepo  *repositories.ProjectRepository
	ProfileRepo  *repositories.ProfileRepository
}

func NewInvoiceService(
	repo *repositories.InvoiceRepository,
	customerRepo *repositories.CustomerRepository,
	projectRepo *repositories.ProjectRepository,
	profileRepo *repositories.ProfileRepository,
) *InvoiceService {
	return &InvoiceService{
		Repo:         repo,
		CustomerRepo: customerRepo,
		ProjectRepo:  projectRepo,
		ProfileRepo:  profileRepo,
	}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.CustomerID == "" {
		return nil, errors.New("customer is required")
	}
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	if len(req.Items) == 0 && !req.OpenAmount {
		return nil, errors.New("invoice needs at least one item or an open amount")
	}

	currency := req.Currency
	if currency == "" {
		profile, err := s.ProfileRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		currency = profile.DefaultCurrency
	}
	if currency != "CHF" && currency != "EUR" {
		return nil, errors.New("currency must be CHF or EUR")
	}

	invoice := &models.Invoice{
		CustomerID: req.CustomerID,
		ProjectID:  req.ProjectID,
		Status:     models.InvoiceStatusDraft,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Currency:   currency,
		Items:      computeItemAmounts(req.Items),
		OpenAmount: req.OpenAmount,
		Reference:  req.Reference,
		Message:    req.Message,
	}
	invoice.TotalAmount = totalOf(invoice.Items)

	if err := s.Repo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.InvoiceWithDetails, error) {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, invoice), nil
}

func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*models.InvoiceWithDetails, error) {
	invoice, err := s.Repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, invoice), nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*models.InvoiceWithDetails, error) {
	invoices, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	detailed := make([]*models.InvoiceWithDetails, 0, len(invoices))
	for _, inv := range invoices {
		detailed = append(detailed, s.withDetails(ctx, inv))
	}
	return detailed, nil
}

func (s *InvoiceService) ListByCustomer(ctx context.Context, customerID string) ([]*models.Invoice, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, req *models.UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, errors.New("paid invoices cannot be edited")
	}

	if req.CustomerID != "" {
		if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer not found: %w", err)
		}
		invoice.CustomerID = req.CustomerID
	}
	invoice.ProjectID = req.ProjectID
	if !req.IssueDate.IsZero() {
		invoice.IssueDate = req.IssueDate
	}
	if !req.DueDate.IsZero() {
		invoice.DueDate = req.DueDate
	}
	if req.Currency != "" {
		if req.Currency != "CHF" && req.Currency != "EUR" {
			return nil, errors.New("currency must be CHF or EUR")
		}
		invoice.Currency = req.Currency
	}
	invoice.Items = computeItemAmounts(req.Items)
	invoice.TotalAmount = totalOf(invoice.Items)
	invoice.OpenAmount = req.OpenAmount
	invoice.Reference = req.Reference
	invoice.Message = req.Message

	if err := s.Repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) UpdateStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	switch status {
	case models.InvoiceStatusDraft, models.InvoiceStatusOpen,
		models.InvoiceStatusPaid, models.InvoiceStatusCanceled:
	default:
		return nil, fmt.Errorf("unknown invoice status %q", status)
	}

	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Status = status
	if err := s.Repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// BuildPayment projects an invoice onto the encoder's read model: profile
// supplies the creditor, the customer the debtor. The projection never
// mutates the invoice.
func (s *InvoiceService) BuildPayment(ctx context.Context, invoice *models.Invoice) (qrbill.Payment, error) {
	profile, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		return qrbill.Payment{}, err
	}

	var debtor qrbill.Party
	if invoice.CustomerID != "" {
		customer, err := s.CustomerRepo.Get(ctx, invoice.CustomerID)
		if err != nil {
			return qrbill.Payment{}, fmt.Errorf("customer not found: %w", err)
		}
		debtor = qrbill.Party{
			Name:       customer.Name,
			Street:     customer.Street,
			Building:   customer.Building,
			PostalCode: customer.PostalCode,
			City:       customer.City,
			Country:    customer.Country,
		}
	}

	payment := qrbill.Payment{
		Account: profile.Account,
		Creditor: qrbill.Party{
			Name:       profile.Name,
			Street:     profile.Street,
			Building:   profile.Building,
			PostalCode: profile.PostalCode,
			City:       profile.City,
			Country:    profile.Country,
		},
		Debtor:    debtor,
		Currency:  invoice.Currency,
		Reference: invoice.Reference,
		Message:   invoice.Message,
	}
	if !invoice.OpenAmount {
		amount := invoice.TotalAmount
		payment.Amount = &amount
	}
	return payment, nil
}

// GeneratePayload validates and encodes the QR-bill payload for an invoice.
// Validation failures block generation; a payload that fails at the bank is
// worse than no payload.
func (s *InvoiceService) GeneratePayload(ctx context.Context, id string) (string, error) {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	payment, err := s.BuildPayment(ctx, invoice)
	if err != nil {
		return "", err
	}
	if err := qrbill.ValidatePayment(payment); err != nil {
		metrics.QRValidationFailures.WithLabelValues(failureReason(payment)).Inc()
		return "", err
	}
	metrics.QRPayloadsGenerated.Inc()
	return qrbill.Encode(payment), nil
}

// GenerateQRImage returns the rendered QR PNG for an invoice, consulting the
// cache first since the payload fully determines the image.
func (s *InvoiceService) GenerateQRImage(ctx context.Context, id string, size int) ([]byte, error) {
	payload, err := s.GeneratePayload(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, ok := cache.GetQRImage(ctx, payload, size); ok {
		metrics.QRImageCacheHits.WithLabelValues("hit").Inc()
		return data, nil
	}
	metrics.QRImageCacheHits.WithLabelValues("miss").Inc()

	data, err := qrbill.RenderPNG(payload, size)
	if err != nil {
		return nil, err
	}
	cache.SetQRImage(ctx, payload, size, data)
	return data, nil
}

// ValidateReference classifies an invoice's reference against the profile
// account; the editor calls this before allowing save.
func (s *InvoiceService) ValidateReference(ctx context.Context, reference string) (qrbill.Classification, error) {
	profile, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		return qrbill.Classification{}, err
	}
	return qrbill.ClassifyReference(profile.Account, reference), nil
}

func (s *InvoiceService) withDetails(ctx context.Context, invoice *models.Invoice) *models.InvoiceWithDetails {
	detailed := &models.InvoiceWithDetails{Invoice: *invoice}
	if invoice.CustomerID != "" {
		if customer, err := s.CustomerRepo.Get(ctx, invoice.CustomerID); err == nil {
			detailed.CustomerName = customer.Name
		}
	}
	if invoice.ProjectID != "" {
		if project, err := s.ProjectRepo.Get(ctx, invoice.ProjectID); err == nil {
			detailed.ProjectName = project.Name
		}
	}
	return detailed
}

func computeItemAmounts(items []models.InvoiceItem) []models.InvoiceItem {
	out := make([]models.InvoiceItem, len(items))
	for i, item := range items {
		item.Amount = roundCents(item.Quantity * item.UnitPrice)
		out[i] = item
	}
	return out
}

func totalOf(items []models.InvoiceItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Amount
	}
	return roundCents(total)
}

func failureReason(p qrbill.Payment) string {
	cls := qrbill.ClassifyReference(p.Account, p.Reference)
	if !cls.Valid {
		return cls.Reason.String()
	}
	return "missing or malformed payment data"
}
