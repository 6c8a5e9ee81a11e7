package ledger

import "math"

// Tolerance for comparing amounts that come out of independent rounding
// steps. Never compare money with ==.
const amountTolerance = 0.01

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func EqualAmounts(a, b float64) bool {
	return math.Abs(a-b) < amountTolerance
}
