package app

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"skudiff/adapters/excel"
	"skudiff/domain/compare"
	"skudiff/internal/extract"
)

// CompareService wires the comparison pipeline: load two tabular sources,
// extract a Code Set from each, compute the directional difference.
// Instances are stateless; every call derives its Code Sets fresh.
type CompareService struct{}

// NewCompareService creates a compare service
func NewCompareService() *CompareService {
	return &CompareService{}
}

// CompareRequest names the two file inputs and their code columns.
type CompareRequest struct {
	FirstPath    string
	FirstColumn  string
	SecondPath   string
	SecondColumn string
	Options      compare.Options
}

// CompareFiles loads both spreadsheet/CSV files and compares their code
// columns. The two files are read in parallel; the computation is still
// one-shot and synchronous from the caller's view.
func (s *CompareService) CompareFiles(ctx context.Context, req CompareRequest) (*compare.Result, error) {
	var first, second *excel.Table

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		first, err = excel.NewDataReader(req.FirstPath).ReadTable()
		return err
	})
	g.Go(func() error {
		var err error
		second, err = excel.NewDataReader(req.SecondPath).ReadTable()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.CompareTables(first, req.FirstColumn, second, req.SecondColumn, req.Options)
}

// CompareTables compares the code columns of two already-loaded tables.
// This is the single entry point every front-end funnels into.
func (s *CompareService) CompareTables(first *excel.Table, firstColumn string, second *excel.Table, secondColumn string, opts compare.Options) (*compare.Result, error) {
	if _, err := compare.ParseDirection(string(opts.Direction)); err != nil {
		return nil, err
	}

	firstSet, err := extract.ColumnCodes(first, firstColumn, opts)
	if err != nil {
		return nil, err
	}
	secondSet, err := extract.ColumnCodes(second, secondColumn, opts)
	if err != nil {
		return nil, err
	}

	result := compare.Diff(firstSet, secondSet, opts.Direction)
	result.Source = first.Name
	result.Target = second.Name
	result.SourceColumn = firstColumn
	result.TargetColumn = secondColumn
	if opts.Direction == compare.SecondMinusFirst {
		result.Source, result.Target = second.Name, first.Name
		result.SourceColumn, result.TargetColumn = secondColumn, firstColumn
	}

	log.Printf("[CompareService] %s.%s vs %s.%s (%s): %d missing",
		first.Name, firstColumn, second.Name, secondColumn, opts.Direction, result.Count)
	return result, nil
}

// TableSource supplies a single-column table from a non-file source, such
// as a database table.
type TableSource interface {
	ReadColumn(ctx context.Context, table, column string) (*excel.Table, error)
}

// CompareFileWithSource compares a spreadsheet column against a column
// served by an external table source.
func (s *CompareService) CompareFileWithSource(ctx context.Context, filePath, fileColumn string, source TableSource, table, tableColumn string, opts compare.Options) (*compare.Result, error) {
	var fileTable, sourceTable *excel.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fileTable, err = excel.NewDataReader(filePath).ReadTable()
		return err
	})
	g.Go(func() error {
		var err error
		sourceTable, err = source.ReadColumn(gctx, table, tableColumn)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.CompareTables(fileTable, fileColumn, sourceTable, tableColumn, opts)
}
