package numberutils

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat64WithError parses a decimal string. NaN and infinities are rejected.
func ToFloat64WithError(str string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

// IsFloat64InRange checks if num is within [min, max] inclusive.
func IsFloat64InRange(num, min, max float64) bool {
	return num >= min && num <= max
}
