package kernel

import "math"

// Round2 rounds a monetary amount to two decimal places, half away
// from zero. All caller-facing prices pass through here.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
