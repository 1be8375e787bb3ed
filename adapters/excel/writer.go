package excel

import (
	"io"
	"log"

	"skudiff/internal/errors"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Comparison"

// WriteWorkbook writes a header row plus data rows as a single-sheet
// workbook to w. Used for the xlsx export of a comparison report.
func WriteWorkbook(w io.Writer, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return errors.Wrap(err, "failed to create report sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "failed to drop default sheet")
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &headerRow); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell coordinates")
		}
		if err := f.SetSheetRow(reportSheet, cellName, &cells); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}

	log.Printf("[WriteWorkbook] Workbook written (%d rows)", len(rows))
	return nil
}
