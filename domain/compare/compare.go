package compare

import (
	"sort"
	"strconv"
)

// CodeSet is a deduplicated collection of normalized codes from one column.
// It contains no missing values and imposes no order; ordering happens at
// report time via Sorted.
type CodeSet map[string]struct{}

// NewCodeSet builds a Code Set from raw cell values, dropping missing
// values and normalizing the rest.
func NewCodeSet(values []string, caseSensitive bool) CodeSet {
	set := make(CodeSet, len(values))
	for _, raw := range values {
		if code, ok := Normalize(raw, caseSensitive); ok {
			set[code] = struct{}{}
		}
	}
	return set
}

// Add inserts an already-normalized code
func (s CodeSet) Add(code string) {
	s[code] = struct{}{}
}

// Contains reports set membership
func (s CodeSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Len returns the set cardinality
func (s CodeSet) Len() int {
	return len(s)
}

// Sorted returns the codes sorted ascending, numeric-aware
func (s CodeSet) Sorted() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return codeLess(codes[i], codes[j])
	})
	return codes
}

// codeLess orders two codes numerically when both parse as numbers,
// lexicographically otherwise. Numbers sort before text.
func codeLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// Difference returns the codes in a that are not in b.
// Standard set-difference semantics; an empty a yields an empty result and
// an empty b yields a copy of a.
func Difference(a, b CodeSet) CodeSet {
	diff := make(CodeSet)
	for code := range a {
		if !b.Contains(code) {
			diff[code] = struct{}{}
		}
	}
	return diff
}

// Diff computes the directional comparison of two Code Sets.
// The inputs must have been normalized with the same options.
func Diff(first, second CodeSet, direction Direction) *Result {
	reference, other := first, second
	if direction == SecondMinusFirst {
		reference, other = second, first
	}

	missing := Difference(reference, other)
	return &Result{
		Missing:    missing,
		Count:      missing.Len(),
		Direction:  direction,
		SourceSize: reference.Len(),
		TargetSize: other.Len(),
	}
}
