package services

import "math"

// roundCents rounds to two decimals so item math never produces an amount
// the QR encoder would reject.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
