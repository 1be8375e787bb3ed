package extract

import (
	"log"

	"skudiff/adapters/excel"
	"skudiff/domain/compare"
	"skudiff/internal/errors"
)

// ColumnCodes produces a Code Set from one named column of a table.
// Fails with a COLUMN_NOT_FOUND error when the column is absent from the
// header row; no partial extraction happens in that case. Missing cells
// are dropped and the remaining values normalized per the options.
func ColumnCodes(table *excel.Table, column string, opts compare.Options) (compare.CodeSet, error) {
	if !table.HasColumn(column) {
		log.Printf("[ColumnCodes] Column %q not found in %s (headers: %v)", column, table.Name, table.Headers)
		return nil, errors.ColumnNotFound(column)
	}

	set := compare.NewCodeSet(table.ColumnValues(column), opts.CaseSensitive)
	log.Printf("[ColumnCodes] Extracted %d distinct codes from %s column %q (%d rows)",
		set.Len(), table.Name, column, len(table.Rows))
	return set, nil
}
