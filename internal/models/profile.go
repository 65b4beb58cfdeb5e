package models

import "time"

// Profile holds the business settings of the freelancer. The address and
// account fields feed the creditor block of every QR-bill payload.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	Building   string `json:"building"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
	// Account is the IBAN or QR-IBAN invoices are paid to.
	Account         string    `json:"account"`
	VATNumber       string    `json:"vat_number"`
	DefaultCurrency string    `json:"default_currency"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpdateProfileRequest represents the request body for updating the profile
type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Street          string `json:"street"`
	Building        string `json:"building"`
	PostalCode      string `json:"postal_code"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Account         string `json:"account"`
	VATNumber       string `json:"vat_number"`
	DefaultCurrency string `json:"default_currency"`
}
