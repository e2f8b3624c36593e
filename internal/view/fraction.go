package view

import (
	"math"
	"strconv"
)

const maxDenominator = 16

// FormatQuantity renders an amount as a simplified mixed fraction: 2,
// 1/2, 1 1/3. Amounts that no fraction with a denominator up to 16
// approximates well are printed as decimals. Nil renders as "".
func FormatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	v := *q
	if v < 0 {
		return "-" + FormatQuantity(ptr(-v))
	}

	whole := math.Floor(v)
	frac := v - whole
	if frac < 1e-6 {
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}
	if 1-frac < 1e-6 {
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}

	num, den, ok := approximate(frac)
	if !ok {
		return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	}
	f := strconv.Itoa(num) + "/" + strconv.Itoa(den)
	if whole == 0 {
		return f
	}
	return strconv.FormatFloat(whole, 'f', -1, 64) + " " + f
}

// approximate finds the smallest denominator whose fraction is within a
// rounding tolerance of x, for 0 < x < 1.
func approximate(x float64) (num, den int, ok bool) {
	for d := 2; d <= maxDenominator; d++ {
		n := math.Round(x * float64(d))
		if n == 0 || int(n) == d {
			continue
		}
		if math.Abs(x-n/float64(d)) < 1e-3 {
			return int(n), d, true
		}
	}
	return 0, 0, false
}

func ptr(v float64) *float64 { return &v }
