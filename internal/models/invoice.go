package models

import "time"

// Invoice statuses, matching the kanban columns of the editor.
const (
	InvoiceStatusDraft    = "draft"
	InvoiceStatusOpen     = "open"
	InvoiceStatusPaid     = "paid"
	InvoiceStatusCanceled = "canceled"
)

// Invoice represents an issued or draft invoice
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerID    string        `json:"customer_id"`
	ProjectID     string        `json:"project_id"`
	Status        string        `json:"status"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	Currency      string        `json:"currency"`
	Items         []InvoiceItem `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	// OpenAmount marks a bill where the payer decides the amount; the QR
	// payload then carries an empty amount field.
	OpenAmount bool      `json:"open_amount"`
	Reference  string    `json:"reference"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// InvoiceItem represents one billed line on an invoice
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID string        `json:"customer_id"`
	ProjectID  string        `json:"project_id"`
	IssueDate  time.Time     `json:"issue_date"`
	DueDate    time.Time     `json:"due_date"`
	Currency   string        `json:"currency"`
	Items      []InvoiceItem `json:"items"`
	OpenAmount bool          `json:"open_amount"`
	Reference  string        `json:"reference"`
	Message    string        `json:"message"`
}

// UpdateInvoiceRequest represents the request to update an invoice
type UpdateInvoiceRequest struct {
	CustomerID string        `json:"customer_id"`
	ProjectID  string        `json:"project_id"`
	IssueDate  time.Time     `json:"issue_date"`
	DueDate    time.Time     `json:"due_date"`
	Currency   string        `json:"currency"`
	Items      []InvoiceItem `json:"items"`
	OpenAmount bool          `json:"open_amount"`
	Reference  string        `json:"reference"`
	Message    string        `json:"message"`
}

// UpdateInvoiceStatusRequest moves an invoice between kanban columns
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceWithDetails includes the resolved customer for list/detail views
type InvoiceWithDetails struct {
	Invoice
	CustomerName string `json:"customer_name"`
	ProjectName  string `json:"project_name"`
}
