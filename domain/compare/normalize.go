package compare

import (
	"math"
	"strconv"
	"strings"
)

// Normalize canonicalizes a raw cell value into a comparable code.
// Returns ok=false for missing values (empty after trimming), which are
// dropped before comparison.
//
// Numeric canonicalization collapses floating-point renderings with a zero
// fractional part into integer textual form ("1001.0" -> "1001") so the
// same code read from differently-typed columns compares equal. Plain
// integer strings are left untouched to preserve leading zeros in
// text-typed code columns.
func Normalize(raw string, caseSensitive bool) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	if canonical, ok := canonicalizeNumeric(value); ok {
		value = canonical
	}

	if !caseSensitive {
		value = strings.ToLower(value)
	}
	return value, true
}

// canonicalizeNumeric rewrites fractional or exponential renderings of
// numbers into their shortest form. Values that are already plain integer
// strings pass through unchanged.
func canonicalizeNumeric(value string) (string, bool) {
	if !strings.ContainsAny(value, ".eE") {
		return value, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value, false
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), true
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}
