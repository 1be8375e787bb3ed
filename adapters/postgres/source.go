package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"skudiff/adapters/excel"
	"skudiff/internal/errors"
)

// identifierPattern restricts table and column names to plain SQL
// identifiers; everything else is rejected before query assembly.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ColumnSource reads a single code column from a database table, making a
// table an alternative tabular input alongside spreadsheet files. Nothing
// is written; comparison history is never persisted.
type ColumnSource struct {
	db *sqlx.DB
}

// Connect opens a connection to the database and verifies it
func Connect(url string) (*ColumnSource, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required for the database source")
	}

	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &ColumnSource{db: db}, nil
}

// Close releases the underlying connection pool
func (s *ColumnSource) Close() error {
	return s.db.Close()
}

// ReadColumn reads every value of one column into a single-column Table so
// the extractor treats database input identically to spreadsheet input.
// NULL cells come back as empty strings and are dropped during extraction.
func (s *ColumnSource) ReadColumn(ctx context.Context, table, column string) (*excel.Table, error) {
	if !identifierPattern.MatchString(table) {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid table name %q", table))
	}
	if !identifierPattern.MatchString(column) {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid column name %q", column))
	}

	query := fmt.Sprintf("SELECT %s::text FROM %s",
		pq.QuoteIdentifier(column), pq.QuoteIdentifier(table))

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		if isUndefinedColumn(err) {
			return nil, errors.ColumnNotFound(column)
		}
		return nil, errors.DatabaseError(fmt.Sprintf("failed to read %s.%s: %v", table, column, err))
	}
	defer rows.Close()

	result := &excel.Table{
		Name:    table,
		Headers: []string{column},
	}
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, errors.Wrap(err, "failed to scan column value")
		}
		result.Rows = append(result.Rows, excel.RawRowData{column: value.String})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed while reading column values")
	}

	log.Printf("[ColumnSource] Read %d rows from %s.%s", len(result.Rows), table, column)
	return result, nil
}

// isUndefinedColumn detects the postgres undefined_column error class
func isUndefinedColumn(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "42703"
	}
	return false
}
