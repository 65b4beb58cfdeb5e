package models

import "time"

// Recurrence intervals for recurring expenses.
const (
	RecurrenceNone      = ""
	RecurrenceMonthly   = "monthly"
	RecurrenceQuarterly = "quarterly"
	RecurrenceYearly    = "yearly"
)

// Expense represents a business expense, optionally recurring
type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	ProjectID   string    `json:"project_id"`
	Recurrence  string    `json:"recurrence"`
	NextDueDate time.Time `json:"next_due_date"`
	Receipt     string    `json:"receipt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	ProjectID   string    `json:"project_id"`
	Recurrence  string    `json:"recurrence"`
	Receipt     string    `json:"receipt"`
}

// UpdateExpenseRequest represents the request body for updating an expense
type UpdateExpenseRequest struct {
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	ProjectID   string    `json:"project_id"`
	Recurrence  string    `json:"recurrence"`
	Receipt     string    `json:"receipt"`
}
