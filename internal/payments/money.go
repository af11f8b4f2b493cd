package payments

import "math"

// MinorUnits converts a decimal price to minor currency units, e.g. 49.99
// dollars to 4999 cents. Rounds half away from zero to absorb float noise.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
