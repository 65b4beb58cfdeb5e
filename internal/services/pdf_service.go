package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"freelance-backend/internal/models"
	"freelance-backend/internal/qrbill"
	"freelance-backend/internal/repositories"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDFService renders invoices as A4 documents with the Swiss payment part
// (QR code plus human-readable payment details) at the bottom.
type PDFService struct {
	InvoiceService *InvoiceService
	ProfileRepo    *repositories.ProfileRepository
	CustomerRepo   *repositories.CustomerRepository

	// QRImageSize is the pixel size the QR symbol is rendered at before
	// being placed on the page.
	QRImageSize int
}

func NewPDFService(
	invoiceService *InvoiceService,
	profileRepo *repositories.ProfileRepository,
	customerRepo *repositories.CustomerRepository,
	qrImageSize int,
) *PDFService {
	return &PDFService{
		InvoiceService: invoiceService,
		ProfileRepo:    profileRepo,
		CustomerRepo:   customerRepo,
		QRImageSize:    qrImageSize,
	}
}

// RenderInvoice produces the invoice PDF. Payload generation runs first so a
// draft that fails reference validation never turns into a document.
func (s *PDFService) RenderInvoice(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := s.InvoiceService.Repo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	profile, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	var customer *models.Customer
	if invoice.CustomerID != "" {
		if customer, err = s.CustomerRepo.Get(ctx, invoice.CustomerID); err != nil {
			return nil, fmt.Errorf("customer not found: %w", err)
		}
	}

	payload, err := s.InvoiceService.GeneratePayload(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice is not ready for QR generation: %w", err)
	}
	qrPNG, err := qrbill.RenderPNG(payload, s.QRImageSize)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Letterhead
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(180, 10, profile.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 5, fmt.Sprintf("%s %s, %s %s", profile.Street, profile.Building, profile.PostalCode, profile.City), "", 1, "L", false, 0, "")
	if profile.VATNumber != "" {
		pdf.CellFormat(180, 5, "VAT "+profile.VATNumber, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Recipient
	if customer != nil {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(180, 5, customer.Name, "", 1, "L", false, 0, "")
		pdf.CellFormat(180, 5, fmt.Sprintf("%s %s", customer.Street, customer.Building), "", 1, "L", false, 0, "")
		pdf.CellFormat(180, 5, fmt.Sprintf("%s %s", customer.PostalCode, customer.City), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Title and dates
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(180, 8, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if !invoice.IssueDate.IsZero() {
		pdf.CellFormat(90, 5, "Date: "+invoice.IssueDate.Format("02.01.2006"), "", 0, "L", false, 0, "")
	}
	if !invoice.DueDate.IsZero() {
		pdf.CellFormat(90, 5, "Due: "+invoice.DueDate.Format("02.01.2006"), "", 1, "L", false, 0, "")
	} else {
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		pdf.CellFormat(90, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, trimQuantity(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(145, 8, "Total "+invoice.Currency, "1", 0, "R", false, 0, "")
	if invoice.OpenAmount {
		pdf.CellFormat(35, 8, "open", "1", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", invoice.TotalAmount), "1", 1, "R", false, 0, "")
	}

	if invoice.Message != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(180, 5, invoice.Message, "", "L", false)
	}

	s.drawPaymentPart(pdf, invoice, profile, customer, qrPNG)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawPaymentPart places the QR symbol and the human-readable payment panel
// at the bottom of the page.
func (s *PDFService) drawPaymentPart(pdf *gofpdf.Fpdf, invoice *models.Invoice, profile *models.Profile, customer *models.Customer, qrPNG []byte) {
	const top = 205.0

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(10, top, 200, top)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetXY(15, top+4)
	pdf.CellFormat(60, 6, "Payment part", "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("qrbill", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qrbill", 15, top+12, 46, 46, false, opts, 0, "")

	x := 70.0
	y := top + 12
	pdf.SetFont("Arial", "B", 8)
	pdf.SetXY(x, y)
	pdf.CellFormat(60, 4, "Account / Payable to", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetX(x)
	pdf.CellFormat(120, 4, profile.Account, "", 1, "L", false, 0, "")
	pdf.SetX(x)
	pdf.CellFormat(120, 4, profile.Name, "", 1, "L", false, 0, "")
	pdf.SetX(x)
	pdf.CellFormat(120, 4, fmt.Sprintf("%s %s %s", profile.PostalCode, profile.City, profile.Country), "", 1, "L", false, 0, "")

	if invoice.Reference != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 8)
		pdf.SetX(x)
		pdf.CellFormat(60, 4, "Reference", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetX(x)
		pdf.CellFormat(120, 4, invoice.Reference, "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 8)
	pdf.SetX(x)
	pdf.CellFormat(60, 4, "Currency / Amount", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetX(x)
	if invoice.OpenAmount {
		pdf.CellFormat(120, 4, invoice.Currency, "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(120, 4, fmt.Sprintf("%s %.2f", invoice.Currency, invoice.TotalAmount), "", 1, "L", false, 0, "")
	}

	if customer != nil {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 8)
		pdf.SetX(x)
		pdf.CellFormat(60, 4, "Payable by", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetX(x)
		pdf.CellFormat(120, 4, customer.Name, "", 1, "L", false, 0, "")
		pdf.SetX(x)
		pdf.CellFormat(120, 4, fmt.Sprintf("%s %s %s", customer.PostalCode, customer.City, customer.Country), "", 1, "L", false, 0, "")
	}
}

func trimQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
