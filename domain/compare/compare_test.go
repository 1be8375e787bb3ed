package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeSet(t *testing.T) {
	tests := []struct {
		name          string
		values        []string
		caseSensitive bool
		expected      []string
	}{
		{
			name:          "drops empty and whitespace cells",
			values:        []string{"1001", "", "   ", "1002"},
			caseSensitive: true,
			expected:      []string{"1001", "1002"},
		},
		{
			name:          "deduplicates",
			values:        []string{"A1", "A1", "A1"},
			caseSensitive: true,
			expected:      []string{"A1"},
		},
		{
			name:          "integer-valued floats collapse to integer form",
			values:        []string{"1001.0", "1002.00"},
			caseSensitive: true,
			expected:      []string{"1001", "1002"},
		},
		{
			name:          "case folding merges variants",
			values:        []string{"ABC", "abc", "Abc"},
			caseSensitive: false,
			expected:      []string{"abc"},
		},
		{
			name:          "case sensitive keeps variants distinct",
			values:        []string{"ABC", "abc"},
			caseSensitive: true,
			expected:      []string{"ABC", "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewCodeSet(tt.values, tt.caseSensitive)
			assert.Equal(t, len(tt.expected), set.Len())
			for _, code := range tt.expected {
				assert.True(t, set.Contains(code), "expected set to contain %q", code)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		caseSensitive bool
		expected      string
		ok            bool
	}{
		{"plain integer unchanged", "1001", true, "1001", true},
		{"trailing .0 stripped", "1001.0", true, "1001", true},
		{"multiple trailing zeros stripped", "1001.000", true, "1001", true},
		{"fractional value kept in shortest form", "10.50", true, "10.5", true},
		{"leading zeros preserved", "007", true, "007", true},
		{"exponent form collapsed", "1.5e3", true, "1500", true},
		{"text lower-cased when insensitive", "SKU-9", false, "sku-9", true},
		{"text kept when sensitive", "SKU-9", true, "SKU-9", true},
		{"surrounding whitespace trimmed", "  1001  ", true, "1001", true},
		{"empty is missing", "", true, "", false},
		{"whitespace only is missing", "   ", true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, tt.caseSensitive)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestDifference(t *testing.T) {
	a := NewCodeSet([]string{"1001", "1002", "1003"}, true)
	b := NewCodeSet([]string{"1002", "1003", "1004"}, true)

	diff := Difference(a, b)
	assert.Equal(t, []string{"1001"}, diff.Sorted())

	// Difference is always a subset of its source set
	for code := range diff {
		assert.True(t, a.Contains(code))
	}
}

func TestDifferenceEmptySets(t *testing.T) {
	full := NewCodeSet([]string{"1001", "1002"}, true)
	empty := CodeSet{}

	assert.Equal(t, 0, Difference(empty, full).Len())
	assert.Equal(t, 2, Difference(full, empty).Len())
	assert.Equal(t, 0, Difference(empty, empty).Len())
}

func TestDiffDirections(t *testing.T) {
	first := NewCodeSet([]string{"1001", "1002", "1003"}, true)
	second := NewCodeSet([]string{"1002", "1003", "1004"}, true)

	forward := Diff(first, second, FirstMinusSecond)
	assert.Equal(t, []string{"1001"}, forward.Codes())
	assert.Equal(t, 1, forward.Count)
	assert.Equal(t, 3, forward.SourceSize)
	assert.Equal(t, 3, forward.TargetSize)

	backward := Diff(first, second, SecondMinusFirst)
	assert.Equal(t, []string{"1004"}, backward.Codes())
	assert.Equal(t, 1, backward.Count)
}

func TestDiffBarcodeAgainstUPC(t *testing.T) {
	// File A "Barcode" = [1001, 1002, 1003]; file B "UPC" = [1002.0, 1003.0].
	// The float renderings must not produce spurious differences.
	barcodes := NewCodeSet([]string{"1001", "1002", "1003"}, true)
	upcs := NewCodeSet([]string{"1002.0", "1003.0"}, true)

	result := Diff(barcodes, upcs, FirstMinusSecond)
	assert.Equal(t, []string{"1001"}, result.Codes())
	assert.Equal(t, 1, result.Count)
}

func TestDiffIdenticalColumnsCaseInsensitive(t *testing.T) {
	first := NewCodeSet([]string{"ABC", "def"}, false)
	second := NewCodeSet([]string{"abc", "DEF"}, false)

	result := Diff(first, second, FirstMinusSecond)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Codes())
}

func TestSortedNumericAware(t *testing.T) {
	set := NewCodeSet([]string{"101", "1001", "21", "SKU-2", "SKU-10"}, true)
	assert.Equal(t, []string{"21", "101", "1001", "SKU-10", "SKU-2"}, set.Sorted())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("first-minus-second")
	require.NoError(t, err)
	assert.Equal(t, FirstMinusSecond, d)

	d, err = ParseDirection("second-minus-first")
	require.NoError(t, err)
	assert.Equal(t, SecondMinusFirst, d)

	_, err = ParseDirection("sideways")
	require.Error(t, err)
}

func TestResultDescribe(t *testing.T) {
	forward := Result{Direction: FirstMinusSecond, Source: "online.xlsx", Target: "master.xlsx"}
	assert.Equal(t,
		"present in 'online.xlsx' but missing from 'master.xlsx'",
		forward.Describe())

	// Source and Target are already oriented for the direction, so the
	// reverse result names the second input first.
	reverse := Result{Direction: SecondMinusFirst, Source: "master.xlsx", Target: "online.xlsx"}
	assert.Equal(t,
		"present in 'master.xlsx' but missing from 'online.xlsx'",
		reverse.Describe())
}

func TestParseCaseFlag(t *testing.T) {
	assert.True(t, ParseCaseFlag("true", false))
	assert.True(t, ParseCaseFlag("on", false))
	assert.True(t, ParseCaseFlag("1", false))
	assert.False(t, ParseCaseFlag("false", true))
	assert.False(t, ParseCaseFlag("0", true))
	assert.True(t, ParseCaseFlag("", true))
	assert.False(t, ParseCaseFlag("", false))
}
