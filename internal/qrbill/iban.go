package qrbill

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Institution ids (IBAN digits 5-9) reserved for QR-IBANs. An account in
// this range routes payments through the QRR reference scheme.
const (
	qrIIDMin = 30000
	qrIIDMax = 31999

	ibanLength = 21 // CH/LI IBANs
)

// IsQRIBAN reports whether account is a Swiss or Liechtenstein IBAN whose
// institution id falls in the QR-IBAN reserved range.
func IsQRIBAN(account string) bool {
	acct := normalizeAccount(account)
	if len(acct) != ibanLength {
		return false
	}
	if !strings.HasPrefix(acct, "CH") && !strings.HasPrefix(acct, "LI") {
		return false
	}
	iid, err := strconv.Atoi(acct[4:9])
	if err != nil {
		return false
	}
	return iid >= qrIIDMin && iid <= qrIIDMax
}

func normalizeAccount(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// ValidatePayment is the boundary check the editor and services run before
// encoding. Encode itself never fails; this is where a draft with missing
// creditor data, a bad currency, or a mismatched reference gets blocked so
// it never reaches a bank scanner as an unpayable bill.
func ValidatePayment(p Payment) error {
	if normalizeAccount(p.Account) == "" {
		return errors.New("creditor account is required")
	}
	if p.Creditor.Name == "" {
		return errors.New("creditor name is required")
	}
	if p.Creditor.PostalCode == "" || p.Creditor.City == "" || p.Creditor.Country == "" {
		return errors.New("creditor postal code, city and country are required")
	}
	if p.Currency != "CHF" && p.Currency != "EUR" {
		return fmt.Errorf("currency must be CHF or EUR, got %q", p.Currency)
	}
	if p.Amount != nil {
		a := *p.Amount
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return errors.New("amount must be a finite number")
		}
		if a < 0 {
			return errors.New("amount must not be negative")
		}
		if math.Abs(a*100-math.Round(a*100)) > 1e-9 {
			return errors.New("amount must have at most two decimal places")
		}
	}
	if cls := ClassifyReference(p.Account, p.Reference); !cls.Valid {
		return fmt.Errorf("invalid payment reference: %s", cls.Reason)
	}
	return nil
}
