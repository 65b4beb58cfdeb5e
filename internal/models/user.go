package models

import "time"

// User is an account that can log into the back office. PasswordHash and
// TOTPSecret carry JSON names because the record store persists users as
// JSON; handlers must return Sanitized() copies, never the stored record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         string    `json:"role"` // "admin" or "user"
	IsActive     bool      `json:"is_active"`
	TOTPSecret   string    `json:"totp_secret,omitempty"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to send to API clients.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	u.TOTPSecret = ""
	return &u
}

// SignupRequest represents the request body for creating a user
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the JWT, or a temp token when 2FA is pending
type LoginResponse struct {
	Token        string `json:"token,omitempty"`
	TempToken    string `json:"temp_token,omitempty"`
	RequiresTOTP bool   `json:"requires_totp"`
	User         *User  `json:"user,omitempty"`
}

// TOTPSetupResponse carries the secret and provisioning QR for the authenticator app
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPVerifyRequest represents the 2FA verification body
type TOTPVerifyRequest struct {
	TempToken string `json:"temp_token"`
	Code      string `json:"code"`
}
