package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newCompareCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	first := writeCSV(t, dir, "online.csv", "Barcode\n1001\n1002\n1003\n")
	second := writeCSV(t, dir, "master.csv", "UPC\n1002.0\n1003.0\n")

	out, err := runCommand(t, []string{
		first, second,
		"--first-column", "Barcode",
		"--second-column", "UPC",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Codes present in 'online.csv' but missing from 'master.csv':")
	assert.Contains(t, out, "1001")
	assert.Contains(t, out, "Total missing codes: 1")
}

func TestCompareCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	first := writeCSV(t, dir, "online.csv", "Barcode\n1001\n")
	second := writeCSV(t, dir, "master.csv", "UPC\n1001\n")
	reportPath := filepath.Join(dir, "report.txt")

	out, err := runCommand(t, []string{
		first, second,
		"--first-column", "Barcode",
		"--second-column", "UPC",
		"--output", reportPath,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Total missing codes: 0")

	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "No missing codes.")
}

func TestCompareCommandIgnoreCase(t *testing.T) {
	dir := t.TempDir()
	first := writeCSV(t, dir, "online.csv", "SKU\nABC\n")
	second := writeCSV(t, dir, "master.csv", "SKU\nabc\n")

	out, err := runCommand(t, []string{
		first, second,
		"--first-column", "SKU",
		"--second-column", "SKU",
		"--ignore-case",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Total missing codes: 0")
}

func TestCompareCommandInvalidDirection(t *testing.T) {
	dir := t.TempDir()
	first := writeCSV(t, dir, "online.csv", "SKU\nABC\n")
	second := writeCSV(t, dir, "master.csv", "SKU\nabc\n")

	_, err := runCommand(t, []string{
		first, second,
		"--first-column", "SKU",
		"--second-column", "SKU",
		"--direction", "sideways",
	})
	require.Error(t, err)
}
