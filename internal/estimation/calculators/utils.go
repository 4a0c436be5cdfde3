package calculators

import (
	"math"
	"strconv"
)

// ceilDiv is ceil(a/b) for positive integers.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// mulInt is a*b for positive integers. ok is false when the product overflows.
func mulInt(a, b int) (product int, ok bool) {
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// formatFloat renders f with the fewest digits that round-trip.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatFixed2(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
