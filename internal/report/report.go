package report

import (
	"fmt"
	"log"
	"os"
	"strings"

	"skudiff/domain/compare"
	"skudiff/internal/errors"
)

// NoMissingMarker is written in place of the code list when the
// difference set is empty, so an empty report body is never ambiguous.
const NoMissingMarker = "No missing codes."

const delimiterWidth = 40

// Text renders a comparison result as a delimited text block: header line,
// sorted codes one per line, footer delimiter.
func Text(result *compare.Result) string {
	delimiter := strings.Repeat("-", delimiterWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", delimiter)
	fmt.Fprintf(&b, "Codes %s:\n", result.Describe())
	if result.Count > 0 {
		for _, code := range result.Codes() {
			fmt.Fprintf(&b, "%s\n", code)
		}
	} else {
		fmt.Fprintf(&b, "%s\n", NoMissingMarker)
	}
	fmt.Fprintf(&b, "%s\n", delimiter)
	return b.String()
}

// WriteTextFile writes the text rendering to path
func WriteTextFile(path string, result *compare.Result) error {
	if err := os.WriteFile(path, []byte(Text(result)), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write report file %s", path)
	}
	log.Printf("[Report] Text report written to %s (%d codes)", path, result.Count)
	return nil
}

// Markdown renders the result for the dashboard preview.
func Markdown(result *compare.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Comparison report\n\n")
	fmt.Fprintf(&b, "Codes %s.\n\n", result.Describe())
	fmt.Fprintf(&b, "- Source codes: %d\n", result.SourceSize)
	fmt.Fprintf(&b, "- Target codes: %d\n", result.TargetSize)
	fmt.Fprintf(&b, "- Missing: **%d**\n\n", result.Count)
	if result.Count == 0 {
		fmt.Fprintf(&b, "_%s_\n", NoMissingMarker)
		return b.String()
	}
	for _, code := range result.Codes() {
		fmt.Fprintf(&b, "- `%s`\n", code)
	}
	return b.String()
}

// Header returns the column headers for the tabular renderings
func Header() []string {
	return []string{"Code", "Status"}
}

// Rows returns the tabular rendering used for CSV and xlsx export. An
// empty difference yields a single explicit marker row.
func Rows(result *compare.Result) [][]string {
	if result.Count == 0 {
		return [][]string{{NoMissingMarker, ""}}
	}

	status := result.Describe()
	rows := make([][]string, 0, result.Count)
	for _, code := range result.Codes() {
		rows = append(rows, []string{code, status})
	}
	return rows
}
