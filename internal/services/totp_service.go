package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"freelance-backend/internal/models"
	"freelance-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "FreelanceOffice"

type TOTPService struct {
	userRepo *repositories.UserRepository
}

func NewTOTPService(userRepo *repositories.UserRepository) *TOTPService {
	return &TOTPService{userRepo: userRepo}
}

// GenerateSetup creates a new TOTP secret and QR code for a user
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	// Store the secret (not yet enabled)
	user.TOTPSecret = key.Secret()
	user.TOTPEnabled = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Provisioning QR for the authenticator app
	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// Enable verifies the first code and turns 2FA on
func (s *TOTPService) Enable(ctx context.Context, user *models.User, code string) error {
	if user.TOTPSecret == "" {
		return errors.New("no pending TOTP setup")
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return errors.New("invalid code")
	}
	user.TOTPEnabled = true
	return s.userRepo.Update(ctx, user)
}

// Verify checks a login code against the user's secret
func (s *TOTPService) Verify(user *models.User, code string) bool {
	return user.TOTPEnabled && totp.Validate(code, user.TOTPSecret)
}

// Disable turns 2FA off and discards the secret
func (s *TOTPService) Disable(ctx context.Context, user *models.User) error {
	user.TOTPSecret = ""
	user.TOTPEnabled = false
	return s.userRepo.Update(ctx, user)
}
