package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errBadQuantity = errors.New("quantity must be a non-negative number")

// ParseQuantity converts "", "2", "0.5", "1/2" or "1 1/2" into an amount.
// The empty string means unspecified and yields nil.
func ParseQuantity(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var total float64
	for _, part := range strings.Fields(s) {
		v, err := parseQuantityPart(part)
		if err != nil {
			return nil, fmt.Errorf("%w, got %q", errBadQuantity, s)
		}
		total += v
	}
	if total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w, got %q", errBadQuantity, s)
	}
	return &total, nil
}

func parseQuantityPart(p string) (float64, error) {
	num, den, ok := strings.Cut(p, "/")
	if !ok {
		return strconv.ParseFloat(p, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, errBadQuantity
	}
	return n / d, nil
}
