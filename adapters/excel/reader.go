package excel

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"

	"skudiff/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the file into a Table
func (r *DataReader) ReadTable() (*Table, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.FileUnreadable(r.filePath, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVTable()
	default:
		return r.readExcelTable()
	}
}

// readExcelTable reads the first sheet of a workbook into a Table
func (r *DataReader) readExcelTable() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.FileUnreadable(r.filePath, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.FileUnreadable(r.filePath, errors.New(errors.CodeFileUnreadable, "workbook has no sheets"))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	log.Printf("[DataReader] Sheet %s read (%d rows)", sheet, len(rows))

	if len(rows) == 0 {
		return nil, errors.FileUnreadable(r.filePath, errors.New(errors.CodeFileUnreadable, "file must have a header row"))
	}

	return r.processRows(rows)
}

// readCSVTable reads CSV data into a Table
func (r *DataReader) readCSVTable() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.FileUnreadable(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.FileUnreadable(r.filePath, err)
	}
	log.Printf("[DataReader] CSV file read (%d rows)", len(rows))

	if len(rows) == 0 {
		return nil, errors.FileUnreadable(r.filePath, errors.New(errors.CodeFileUnreadable, "file must have a header row"))
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into Table format
func (r *DataReader) processRows(rows [][]string) (*Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRowData)

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &Table{
		Name:    filepath.Base(r.filePath),
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
