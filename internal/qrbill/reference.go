package qrbill

import (
	"strings"
)

// Scheme is the reference-type label emitted at line 27 of the payload.
type Scheme string

const (
	SchemeQRR  Scheme = "QRR"  // 27-digit reference with Mod-10 recursive check digit
	SchemeSCOR Scheme = "SCOR" // ISO 11649 "RF" creditor reference
	SchemeNON  Scheme = "NON"  // no structured reference
)

// Reason explains why a reference failed (or passed) classification.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonMalformedLength
	ReasonBadCharacter
	ReasonChecksumMismatch
	ReasonSchemeMismatch
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonMalformedLength:
		return "reference has the wrong length"
	case ReasonBadCharacter:
		return "reference contains invalid characters"
	case ReasonChecksumMismatch:
		return "reference check digit does not match"
	case ReasonSchemeMismatch:
		return "reference scheme does not match the account type"
	default:
		return "unknown"
	}
}

// Classification is the result of matching a reference against the creditor
// account. Scheme and Reference are what the encoder emits; Valid and Reason
// are what the editor surfaces before allowing QR generation.
type Classification struct {
	Scheme    Scheme `json:"scheme"`
	Reference string `json:"reference"`
	Valid     bool   `json:"valid"`
	Reason    Reason `json:"-"`
}

// mod10Table is the ISO 7064 Mod 10 recursive carry-transition table used by
// Swiss payment references. Indexed by (current carry, next digit); the check
// digit is (10 - final carry) mod 10. Reproduced verbatim from the standard.
var mod10Table = [10][10]int{
	{0, 9, 4, 6, 8, 2, 7, 1, 3, 5},
	{9, 4, 6, 8, 2, 7, 1, 3, 5, 0},
	{4, 6, 8, 2, 7, 1, 3, 5, 0, 9},
	{6, 8, 2, 7, 1, 3, 5, 0, 9, 4},
	{8, 2, 7, 1, 3, 5, 0, 9, 4, 6},
	{2, 7, 1, 3, 5, 0, 9, 4, 6, 8},
	{7, 1, 3, 5, 0, 9, 4, 6, 8, 2},
	{1, 3, 5, 0, 9, 4, 6, 8, 2, 7},
	{3, 5, 0, 9, 4, 6, 8, 2, 7, 1},
	{5, 0, 9, 4, 6, 8, 2, 7, 1, 3},
}

const qrReferenceLength = 27

// CheckDigit computes the Mod-10 recursive check digit over a digit string.
// The second return is false if the input contains a non-digit.
func CheckDigit(digits string) (int, bool) {
	carry := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		carry = mod10Table[carry][c-'0']
	}
	return (10 - carry) % 10, true
}

// IsValidQRReference reports whether ref is a well-formed QRR reference:
// 27 digits whose trailing digit matches the Mod-10 recursive checksum of
// the first 26.
func IsValidQRReference(ref string) bool {
	ref = normalizeReference(ref)
	if len(ref) != qrReferenceLength || !isDigits(ref) {
		return false
	}
	check, ok := CheckDigit(ref[:qrReferenceLength-1])
	return ok && check == int(ref[qrReferenceLength-1]-'0')
}

// IsValidCreditorReference reports whether ref is a valid ISO 11649 "RF"
// creditor reference (mod-97 rearrangement check).
func IsValidCreditorReference(ref string) bool {
	ref = normalizeReference(ref)
	if len(ref) < 5 || len(ref) > 25 || !strings.HasPrefix(ref, "RF") {
		return false
	}
	// Move "RFxx" to the end, expand letters to two digits, check mod 97 == 1.
	rearranged := ref[4:] + ref[:4]
	rem := 0
	for _, c := range rearranged {
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			n := int(c-'A') + 10
			rem = (rem*100 + n) % 97
		default:
			return false
		}
	}
	return rem == 1
}

// ClassifyReference matches a raw reference against the creditor account
// type. A QR-IBAN demands a valid QRR reference; a plain IBAN allows an
// empty reference (NON) or a valid SCOR reference. A QRR-shaped reference on
// a plain IBAN is a scheme mismatch, distinct from a failed checksum.
func ClassifyReference(account, raw string) Classification {
	ref := normalizeReference(raw)

	if IsQRIBAN(account) {
		return classifyForQRIBAN(ref)
	}
	return classifyForIBAN(ref)
}

func classifyForQRIBAN(ref string) Classification {
	switch {
	case ref == "":
		// A QR-IBAN is unpayable without a QRR reference.
		return Classification{Scheme: SchemeQRR, Reason: ReasonSchemeMismatch}
	case strings.HasPrefix(ref, "RF"):
		return Classification{Scheme: SchemeQRR, Reference: ref, Reason: ReasonSchemeMismatch}
	case !isDigits(ref):
		return Classification{Scheme: SchemeQRR, Reference: ref, Reason: ReasonBadCharacter}
	case len(ref) != qrReferenceLength:
		return Classification{Scheme: SchemeQRR, Reference: ref, Reason: ReasonMalformedLength}
	case !IsValidQRReference(ref):
		return Classification{Scheme: SchemeQRR, Reference: ref, Reason: ReasonChecksumMismatch}
	default:
		return Classification{Scheme: SchemeQRR, Reference: ref, Valid: true, Reason: ReasonOK}
	}
}

func classifyForIBAN(ref string) Classification {
	switch {
	case ref == "":
		return Classification{Scheme: SchemeNON, Valid: true, Reason: ReasonOK}
	case isDigits(ref) && len(ref) == qrReferenceLength:
		// A QRR reference belongs to a QR-IBAN, even when its checksum holds.
		return Classification{Scheme: SchemeQRR, Reference: ref, Reason: ReasonSchemeMismatch}
	case strings.HasPrefix(ref, "RF"):
		if IsValidCreditorReference(ref) {
			return Classification{Scheme: SchemeSCOR, Reference: ref, Valid: true, Reason: ReasonOK}
		}
		if len(ref) < 5 || len(ref) > 25 {
			return Classification{Scheme: SchemeSCOR, Reference: ref, Reason: ReasonMalformedLength}
		}
		if !isAlphanumeric(ref) {
			return Classification{Scheme: SchemeSCOR, Reference: ref, Reason: ReasonBadCharacter}
		}
		return Classification{Scheme: SchemeSCOR, Reference: ref, Reason: ReasonChecksumMismatch}
	default:
		return Classification{Scheme: SchemeNON, Reference: ref, Reason: ReasonBadCharacter}
	}
}

func normalizeReference(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func isAlphanumeric(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return s != ""
}
