package qrbill

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayment() Payment {
	amount := 199.95
	return Payment{
		Account: "CH44 3199 9123 0008 8901 2",
		Creditor: Party{
			Name:       "Erika Musterfrau",
			Street:     "Musterstrasse",
			Building:   "7",
			PostalCode: "8000",
			City:       "Zuerich",
			Country:    "CH",
		},
		Debtor: Party{
			Name:       "Hans Beispiel",
			Street:     "Beispielweg",
			Building:   "12",
			PostalCode: "3000",
			City:       "Bern",
			Country:    "CH",
		},
		Amount:    &amount,
		Currency:  "CHF",
		Reference: "210000000003139471430009017",
		Message:   "2024-001",
	}
}

func TestEncodeFieldCount(t *testing.T) {
	lines := strings.Split(Encode(samplePayment()), "\n")
	assert.Len(t, lines, PayloadLineCount)

	// Even a zero-value payment keeps every position.
	lines = strings.Split(Encode(Payment{}), "\n")
	assert.Len(t, lines, PayloadLineCount)
}

func TestEncodeHeaderAndTrailer(t *testing.T) {
	lines := strings.Split(Encode(samplePayment()), "\n")
	require.Len(t, lines, PayloadLineCount)

	assert.Equal(t, "SPC", lines[0])
	assert.Equal(t, "0200", lines[1])
	assert.Equal(t, "1", lines[2])
	assert.Equal(t, "EPD", lines[29])
	assert.Equal(t, "", lines[30])
}

func TestEncodeSampleScenario(t *testing.T) {
	lines := strings.Split(Encode(samplePayment()), "\n")
	require.Len(t, lines, PayloadLineCount)

	assert.Equal(t, "CH4431999123000889012", lines[3], "account is emitted without spaces")
	assert.Equal(t, "S", lines[4])
	assert.Equal(t, "Erika Musterfrau", lines[5])
	assert.Equal(t, "199.95", lines[17])
	assert.Equal(t, "CHF", lines[18])
	assert.Equal(t, "S", lines[19])
	assert.Equal(t, "Hans Beispiel", lines[20])
	assert.Equal(t, "QRR", lines[26])
	assert.Equal(t, "210000000003139471430009017", lines[27])
	assert.Equal(t, "2024-001", lines[28])
}

func TestEncodeUltimateCreditorBlockEmpty(t *testing.T) {
	lines := strings.Split(Encode(samplePayment()), "\n")
	require.Len(t, lines, PayloadLineCount)

	for i := 11; i <= 16; i++ {
		assert.Equal(t, "", lines[i], "ultimate creditor field %d", i+1)
	}
}

func TestEncodeOpenAmount(t *testing.T) {
	p := samplePayment()
	p.Amount = nil

	lines := strings.Split(Encode(p), "\n")
	assert.Equal(t, "", lines[17], "absent amount renders empty, not 0.00")
}

func TestEncodeNoDebtor(t *testing.T) {
	p := samplePayment()
	p.Debtor = Party{}

	lines := strings.Split(Encode(p), "\n")
	require.Len(t, lines, PayloadLineCount)
	for i := 19; i <= 25; i++ {
		assert.Equal(t, "", lines[i], "debtor field %d", i+1)
	}
}

func TestEncodeEmptyReferenceWithPlainIBAN(t *testing.T) {
	p := samplePayment()
	p.Account = "CH9300762011623852957"
	p.Reference = ""

	lines := strings.Split(Encode(p), "\n")
	assert.Equal(t, "NON", lines[26])
	assert.Equal(t, "", lines[27])
}

func TestEncodeStripsEmbeddedNewlines(t *testing.T) {
	p := samplePayment()
	p.Creditor.Name = "Erika\nMusterfrau"
	p.Message = "line one\r\nline two"

	lines := strings.Split(Encode(p), "\n")
	require.Len(t, lines, PayloadLineCount, "embedded newlines must not add lines")
	assert.Equal(t, "Erika Musterfrau", lines[5])
	assert.Equal(t, "line one line two", lines[28])
}

func TestEncodeTruncatesOverlongFields(t *testing.T) {
	p := samplePayment()
	p.Creditor.Name = strings.Repeat("x", 100)

	lines := strings.Split(Encode(p), "\n")
	assert.Len(t, lines[5], 70)
}

func TestEncodeDeterministic(t *testing.T) {
	p := samplePayment()
	assert.Equal(t, Encode(p), Encode(p))
}

func TestFormatAmount(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }

	tests := []struct {
		name   string
		amount *float64
		want   string
	}{
		{"absent", nil, ""},
		{"zero", ptr(0), "0.00"},
		{"whole", ptr(1500), "1500.00"},
		{"one decimal", ptr(42.5), "42.50"},
		{"two decimals", ptr(199.95), "199.95"},
		{"negative", ptr(-1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(tt.amount))
		})
	}
}
