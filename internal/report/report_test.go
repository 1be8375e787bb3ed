package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skudiff/domain/compare"
)

func sampleResult() *compare.Result {
	first := compare.NewCodeSet([]string{"1001", "1002", "1003"}, true)
	second := compare.NewCodeSet([]string{"1002.0", "1003.0"}, true)

	result := compare.Diff(first, second, compare.FirstMinusSecond)
	result.Source = "online.xlsx"
	result.Target = "master.xlsx"
	result.SourceColumn = "Barcode"
	result.TargetColumn = "UPC"
	return result
}

func emptyResult() *compare.Result {
	set := compare.NewCodeSet([]string{"1001"}, true)
	result := compare.Diff(set, set, compare.FirstMinusSecond)
	result.Source = "online.xlsx"
	result.Target = "master.xlsx"
	return result
}

func TestTextReport(t *testing.T) {
	text := Text(sampleResult())

	assert.Contains(t, text, strings.Repeat("-", 40))
	assert.Contains(t, text, "Codes present in 'online.xlsx' but missing from 'master.xlsx':")
	assert.Contains(t, text, "1001\n")
	assert.NotContains(t, text, NoMissingMarker)
}

func TestTextReportEmptyResult(t *testing.T) {
	text := Text(emptyResult())

	// Empty differences must be explicit, never an empty body
	assert.Contains(t, text, NoMissingMarker)
}

func TestTextReportSorted(t *testing.T) {
	first := compare.NewCodeSet([]string{"1003", "101", "1002"}, true)
	result := compare.Diff(first, compare.CodeSet{}, compare.FirstMinusSecond)
	result.Source = "a.csv"
	result.Target = "b.csv"

	text := Text(result)
	i101 := strings.Index(text, "101\n")
	i1002 := strings.Index(text, "1002\n")
	i1003 := strings.Index(text, "1003\n")
	require.True(t, i101 >= 0 && i1002 >= 0 && i1003 >= 0)
	assert.Less(t, i101, i1002)
	assert.Less(t, i1002, i1003)
}

func TestWriteTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteTextFile(path, sampleResult()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "1001")
}

func TestMarkdownReport(t *testing.T) {
	md := Markdown(sampleResult())
	assert.Contains(t, md, "Missing: **1**")
	assert.Contains(t, md, "`1001`")

	md = Markdown(emptyResult())
	assert.Contains(t, md, NoMissingMarker)
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult())
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0][0])

	rows = Rows(emptyResult())
	require.Len(t, rows, 1)
	assert.Equal(t, NoMissingMarker, rows[0][0])
}
