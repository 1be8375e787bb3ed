package compare

import (
	"fmt"
	"strconv"

	"skudiff/internal/errors"
)

// Direction selects which Code Set is the reference when reporting omissions.
type Direction string

const (
	// FirstMinusSecond reports codes present in the first source but absent from the second.
	FirstMinusSecond Direction = "first-minus-second"
	// SecondMinusFirst reports codes present in the second source but absent from the first.
	SecondMinusFirst Direction = "second-minus-first"
)

// ParseDirection converts a user-supplied direction string into a Direction
func ParseDirection(value string) (Direction, error) {
	switch Direction(value) {
	case FirstMinusSecond, SecondMinusFirst:
		return Direction(value), nil
	}
	return "", errors.InvalidDirection(value)
}

// ParseCaseFlag interprets a user-supplied case-sensitivity flag. It
// accepts the usual boolean spellings plus "on" for HTML checkbox values;
// anything else falls back to the configured default. Every front-end
// parses the flag through here so they agree.
func ParseCaseFlag(value string, fallback bool) bool {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if value == "on" {
		return true
	}
	return fallback
}

// Options control normalization and direction for a single comparison.
// The same options apply to both input columns; comparing a normalized
// set against an un-normalized one is an implementation error.
type Options struct {
	CaseSensitive bool
	Direction     Direction
}

// DefaultOptions returns the documented defaults: case-sensitive,
// first-minus-second.
func DefaultOptions() Options {
	return Options{
		CaseSensitive: true,
		Direction:     FirstMinusSecond,
	}
}

// Result is the outcome of one directional comparison.
type Result struct {
	// Missing holds the difference set; always a subset of the reference set.
	Missing CodeSet
	// Count is the cardinality of Missing.
	Count int
	// Direction that produced this result.
	Direction Direction
	// Source and Target identify the two inputs (file names, table names).
	Source string
	Target string
	// SourceColumn and TargetColumn are the compared column names.
	SourceColumn string
	TargetColumn string
	// SourceSize and TargetSize are the Code Set cardinalities of the
	// reference set and the other set after normalization and deduplication.
	SourceSize int
	TargetSize int
}

// Codes returns the missing codes sorted ascending. Numeric codes sort
// numerically, everything else lexicographically.
func (r *Result) Codes() []string {
	return r.Missing.Sorted()
}

// Describe renders the comparison as a human-readable sentence fragment.
// Source and Target are already oriented for the result's direction, so
// the reference set always reads first.
func (r *Result) Describe() string {
	return fmt.Sprintf("present in '%s' but missing from '%s'", r.Source, r.Target)
}
