// Package qrbill encodes invoice data into the Swiss Payments Code (SPC),
// the text record embedded in the QR code of a Swiss QR-bill, and validates
// the payment references the standard permits (QRR, SCOR, NON).
package qrbill

// Party holds the structured address of one side of a payment.
type Party struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	Building   string `json:"building"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// IsEmpty reports whether no address field is set. A fully empty debtor is
// permitted by the standard ("no debtor"); its fields are still emitted in
// position.
func (p Party) IsEmpty() bool {
	return p.Name == "" && p.Street == "" && p.Building == "" &&
		p.PostalCode == "" && p.City == "" && p.Country == ""
}

// Payment is the read-only projection of an invoice that the encoder
// consumes. It is built fresh from the current draft on every render and is
// never persisted.
type Payment struct {
	// Account is the creditor IBAN or QR-IBAN, spaces allowed.
	Account  string `json:"account"`
	Creditor Party  `json:"creditor"`
	Debtor   Party  `json:"debtor"`

	// Amount is nil for an open bill (the payer fills it in).
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`

	// Reference is a QRR or SCOR reference, or empty for NON.
	Reference string `json:"reference"`
	// Message is the unstructured free-text note.
	Message string `json:"message"`
}
