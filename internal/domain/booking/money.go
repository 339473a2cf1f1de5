package booking

import "math"

// RoundMoney normalizes a monetary amount to whole cents, rounding halves
// away from zero. Every amount the service exposes or stores passes through
// this before anything else sees it.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
