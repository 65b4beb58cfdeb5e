package qrbill

import (
	"math"
	"strconv"
	"strings"
)

// Fixed literals of the Swiss Payments Code record.
const (
	spcHeader  = "SPC"
	spcVersion = "0200"
	spcCoding  = "1" // Latin character set
	spcTrailer = "EPD"

	addressTypeStructured = "S"
)

// PayloadLineCount is the number of newline-joined fields in every payload.
// Positions are fixed: empty optional fields are emitted, never omitted.
const PayloadLineCount = 31

// Per-field character limits from the Swiss implementation guidelines.
const (
	maxNameLen     = 70
	maxStreetLen   = 70
	maxBuildingLen = 16
	maxPostalLen   = 16
	maxCityLen     = 35
	maxCountryLen  = 2
	maxMessageLen  = 140
)

// Encode renders a payment as the SPC text record: exactly 31 fields joined
// by '\n', with the EPD trailer at line 30 and the billing-information field
// (always empty here) at line 31. It is pure and never fails; callers are
// expected to run ValidatePayment first, since a payload built from blank
// creditor fields is structurally valid but not payable.
func Encode(p Payment) string {
	cls := ClassifyReference(p.Account, p.Reference)

	debtorType := ""
	if !p.Debtor.IsEmpty() {
		debtorType = addressTypeStructured
	}

	fields := make([]string, 0, PayloadLineCount)
	fields = append(fields,
		spcHeader,
		spcVersion,
		spcCoding,
		normalizeAccount(p.Account),
	)
	fields = appendParty(fields, addressTypeStructured, p.Creditor)
	// Ultimate creditor block: reserved by the standard, never populated.
	fields = append(fields, "", "", "", "", "", "")
	fields = append(fields,
		formatAmount(p.Amount),
		sanitizeField(p.Currency, 3),
	)
	fields = appendParty(fields, debtorType, p.Debtor)
	fields = append(fields,
		string(cls.Scheme),
		cls.Reference,
		sanitizeField(p.Message, maxMessageLen),
		spcTrailer,
		"", // billing information
	)

	return strings.Join(fields, "\n")
}

func appendParty(fields []string, addressType string, p Party) []string {
	return append(fields,
		addressType,
		sanitizeField(p.Name, maxNameLen),
		sanitizeField(p.Street, maxStreetLen),
		sanitizeField(p.Building, maxBuildingLen),
		sanitizeField(p.PostalCode, maxPostalLen),
		sanitizeField(p.City, maxCityLen),
		sanitizeField(strings.ToUpper(strings.TrimSpace(p.Country)), maxCountryLen),
	)
}

// formatAmount renders the amount with exactly two decimals and '.' as the
// decimal point, no grouping. An absent or non-finite amount renders as the
// empty field (open bill), never "0.00".
func formatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	a := *amount
	if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
		return ""
	}
	return strconv.FormatFloat(a, 'f', 2, 64)
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitizeField strips the payload's own delimiter out of free text and
// truncates to the standard's per-field limit so the 31-line contract
// survives any input.
func sanitizeField(s string, max int) string {
	s = strings.TrimSpace(newlineReplacer.Replace(s))
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
