package qrbill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	sampleQRIBAN    = "CH4431999123000889012"
	samplePlainIBAN = "CH9300762011623852957"
	sampleQRRef     = "210000000003139471430009017"
	sampleSCORRef   = "RF18539007547034"
)

func TestIsValidQRReference(t *testing.T) {
	assert.True(t, IsValidQRReference(sampleQRRef))
	assert.True(t, IsValidQRReference("21 00000 00003 13947 14300 09017"), "spaces are stripped")

	assert.False(t, IsValidQRReference(""))
	assert.False(t, IsValidQRReference("21000000000313947143000901"), "26 digits")
	assert.False(t, IsValidQRReference("2100000000031394714300090170"), "28 digits")
	assert.False(t, IsValidQRReference("21000000000313947143000901A"))
}

func TestIsValidQRReferenceDetectsAnySingleDigitFlip(t *testing.T) {
	for pos := 0; pos < len(sampleQRRef); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if sampleQRRef[pos] == d {
				continue
			}
			flipped := sampleQRRef[:pos] + string(d) + sampleQRRef[pos+1:]
			assert.Falsef(t, IsValidQRReference(flipped),
				"flip at position %d to %c must fail the checksum", pos, d)
		}
	}
}

func TestCheckDigit(t *testing.T) {
	check, ok := CheckDigit(sampleQRRef[:26])
	assert.True(t, ok)
	assert.Equal(t, 7, check)

	_, ok = CheckDigit("12a")
	assert.False(t, ok)
}

func TestIsValidCreditorReference(t *testing.T) {
	assert.True(t, IsValidCreditorReference(sampleSCORRef))
	assert.True(t, IsValidCreditorReference("RF71 2348 231"))

	assert.False(t, IsValidCreditorReference("RF19539007547034"), "wrong check digits")
	assert.False(t, IsValidCreditorReference("RF18"))
	assert.False(t, IsValidCreditorReference("XX18539007547034"))
	assert.False(t, IsValidCreditorReference("RF18539007547034123456789012"), "too long")
}

func TestIsQRIBAN(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    bool
	}{
		{"QR-IBAN, IID 31999", sampleQRIBAN, true},
		{"QR-IBAN with spaces", "CH44 3199 9123 0008 8901 2", true},
		{"plain IBAN, IID 00762", samplePlainIBAN, false},
		{"foreign IBAN", "DE89370400440532013000", false},
		{"too short", "CH44", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQRIBAN(tt.account))
		})
	}
}

func TestClassifyReference(t *testing.T) {
	tests := []struct {
		name       string
		account    string
		reference  string
		wantScheme Scheme
		wantValid  bool
		wantReason Reason
	}{
		{"QRR on QR-IBAN", sampleQRIBAN, sampleQRRef, SchemeQRR, true, ReasonOK},
		{"QRR with spaces", sampleQRIBAN, "21 00000 00003 13947 14300 09017", SchemeQRR, true, ReasonOK},
		{"bad checksum on QR-IBAN", sampleQRIBAN, "210000000003139471430009018", SchemeQRR, false, ReasonChecksumMismatch},
		{"short reference on QR-IBAN", sampleQRIBAN, "12345", SchemeQRR, false, ReasonMalformedLength},
		{"letters on QR-IBAN", sampleQRIBAN, "21000000000313947143000901A", SchemeQRR, false, ReasonBadCharacter},
		{"empty reference on QR-IBAN", sampleQRIBAN, "", SchemeQRR, false, ReasonSchemeMismatch},
		{"SCOR reference on QR-IBAN", sampleQRIBAN, sampleSCORRef, SchemeQRR, false, ReasonSchemeMismatch},
		{"empty reference on plain IBAN", samplePlainIBAN, "", SchemeNON, true, ReasonOK},
		{"SCOR on plain IBAN", samplePlainIBAN, sampleSCORRef, SchemeSCOR, true, ReasonOK},
		{"lowercase SCOR normalized", samplePlainIBAN, "rf18 5390 0754 7034", SchemeSCOR, true, ReasonOK},
		{"SCOR bad check digits", samplePlainIBAN, "RF99539007547034", SchemeSCOR, false, ReasonChecksumMismatch},
		{"QRR reference on plain IBAN", samplePlainIBAN, sampleQRRef, SchemeQRR, false, ReasonSchemeMismatch},
		{"garbage on plain IBAN", samplePlainIBAN, "not-a-reference", SchemeNON, false, ReasonBadCharacter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := ClassifyReference(tt.account, tt.reference)
			assert.Equal(t, tt.wantScheme, cls.Scheme)
			assert.Equal(t, tt.wantValid, cls.Valid)
			assert.Equal(t, tt.wantReason, cls.Reason)
		})
	}
}

func TestValidatePayment(t *testing.T) {
	base := samplePayment()
	assert.NoError(t, ValidatePayment(base))

	t.Run("missing account", func(t *testing.T) {
		p := base
		p.Account = ""
		assert.Error(t, ValidatePayment(p))
	})

	t.Run("missing creditor name", func(t *testing.T) {
		p := base
		p.Creditor.Name = ""
		assert.Error(t, ValidatePayment(p))
	})

	t.Run("bad currency", func(t *testing.T) {
		p := base
		p.Currency = "USD"
		assert.Error(t, ValidatePayment(p))
	})

	t.Run("open amount is allowed", func(t *testing.T) {
		p := base
		p.Amount = nil
		assert.NoError(t, ValidatePayment(p))
	})

	t.Run("three decimal places", func(t *testing.T) {
		p := base
		amount := 10.005
		p.Amount = &amount
		assert.Error(t, ValidatePayment(p))
	})

	t.Run("mismatched reference", func(t *testing.T) {
		p := base
		p.Reference = sampleSCORRef
		assert.Error(t, ValidatePayment(p))
	})
}
