package models

import "time"

// Project statuses, matching the kanban columns of the editor.
const (
	ProjectStatusActive   = "active"
	ProjectStatusOnHold   = "on_hold"
	ProjectStatusDone     = "done"
	ProjectStatusArchived = "archived"
)

// Project groups invoices and expenses for one engagement
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"status"`
	HourlyRate  float64   `json:"hourly_rate"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	CustomerID  string  `json:"customer_id"`
	HourlyRate  float64 `json:"hourly_rate"`
	Description string  `json:"description"`
}

// UpdateProjectRequest represents the request body for updating a project
type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	CustomerID  string  `json:"customer_id"`
	Status      string  `json:"status"`
	HourlyRate  float64 `json:"hourly_rate"`
	Description string  `json:"description"`
}
