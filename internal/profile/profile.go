package profile

import (
	"log"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"skudiff/adapters/excel"
	"skudiff/internal/errors"
)

// ColumnProfile summarizes one code column for the dashboard view.
type ColumnProfile struct {
	Table    string `json:"table"`
	Column   string `json:"column"`
	Rows     int    `json:"rows"`
	Missing  int    `json:"missing"`
	Distinct int    `json:"distinct"`
	// NumericShare is the fraction of non-missing values that parse as numbers.
	NumericShare float64 `json:"numeric_share"`
	// Min, Max and Mean cover the numeric values only; zero when the
	// column has no numeric values.
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	// Entropy is the Shannon entropy of the value distribution in nats.
	// High entropy means the column behaves like a key; low entropy means
	// heavy duplication.
	Entropy float64 `json:"entropy"`
}

// Column profiles one named column of a table.
func Column(table *excel.Table, column string) (*ColumnProfile, error) {
	if !table.HasColumn(column) {
		return nil, errors.ColumnNotFound(column)
	}

	values := table.ColumnValues(column)
	counts := make(map[string]int)
	var numeric []float64
	missing := 0

	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			missing++
			continue
		}
		counts[value]++
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			numeric = append(numeric, f)
		}
	}

	p := &ColumnProfile{
		Table:    table.Name,
		Column:   column,
		Rows:     len(values),
		Missing:  missing,
		Distinct: len(counts),
	}

	present := len(values) - missing
	if present > 0 {
		p.NumericShare = float64(len(numeric)) / float64(present)
		p.Entropy = distributionEntropy(counts, present)
	}

	if len(numeric) > 0 {
		// stats errors only on empty input, which is excluded above
		p.Min, _ = stats.Min(numeric)
		p.Max, _ = stats.Max(numeric)
		p.Mean, _ = stats.Mean(numeric)
	}

	log.Printf("[Profile] %s.%s: %d rows, %d missing, %d distinct, %.0f%% numeric",
		table.Name, column, p.Rows, p.Missing, p.Distinct, p.NumericShare*100)
	return p, nil
}

// distributionEntropy computes the Shannon entropy of the observed value
// frequencies.
func distributionEntropy(counts map[string]int, total int) float64 {
	probs := make([]float64, 0, len(counts))
	for _, c := range counts {
		probs = append(probs, float64(c)/float64(total))
	}
	return stat.Entropy(probs)
}
