package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"skudiff/adapters/postgres"
	"skudiff/app"
	"skudiff/domain/compare"
	"skudiff/internal/config"
	"skudiff/internal/report"
)

func main() {
	// .env is optional for the CLI; flags and arguments carry the inputs
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "skudiff",
		Short: "Compare a code column between two tabular datasets",
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newDBCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var firstColumn, secondColumn, direction, output string
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "compare [first-file] [second-file]",
		Short: "Compare a code column between two spreadsheet files",
		Long: `Compare a code column between two spreadsheet (.xlsx, .xls) or CSV files
and report the codes present in one but absent from the other.

Example: skudiff compare online.xlsx master.xlsx --first-column "Variant Barcode" --second-column UPC --output missing.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(direction, ignoreCase)
			if err != nil {
				return err
			}

			svc := app.NewCompareService()
			result, err := svc.CompareFiles(cmd.Context(), app.CompareRequest{
				FirstPath:    args[0],
				FirstColumn:  firstColumn,
				SecondPath:   args[1],
				SecondColumn: secondColumn,
				Options:      opts,
			})
			if err != nil {
				return err
			}

			return emitReport(cmd, result, output)
		},
	}

	cmd.Flags().StringVar(&firstColumn, "first-column", "", "Code column in the first file (required)")
	cmd.Flags().StringVar(&secondColumn, "second-column", "", "Code column in the second file (required)")
	cmd.Flags().StringVar(&direction, "direction", string(compare.FirstMinusSecond), "Comparison direction: first-minus-second or second-minus-first")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "Fold case before comparing")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("first-column")
	_ = cmd.MarkFlagRequired("second-column")

	return cmd
}

func newDBCmd() *cobra.Command {
	var fileColumn, dbColumn, direction, output string
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "db [file] [table]",
		Short: "Compare a spreadsheet column against a database table column",
		Long: `Compare a code column of a spreadsheet file against a column of a
database table. The connection string comes from DATABASE_URL.

Example: skudiff db online.xlsx products --file-column Barcode --db-column upc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(direction, ignoreCase)
			if err != nil {
				return err
			}

			appConfig, err := config.Load()
			if err != nil {
				return err
			}

			source, err := postgres.Connect(appConfig.Database.URL)
			if err != nil {
				return err
			}
			defer source.Close()

			svc := app.NewCompareService()
			result, err := svc.CompareFileWithSource(cmd.Context(), args[0], fileColumn, source, args[1], dbColumn, opts)
			if err != nil {
				return err
			}

			return emitReport(cmd, result, output)
		},
	}

	cmd.Flags().StringVar(&fileColumn, "file-column", "", "Code column in the spreadsheet file (required)")
	cmd.Flags().StringVar(&dbColumn, "db-column", "", "Code column in the database table (required)")
	cmd.Flags().StringVar(&direction, "direction", string(compare.FirstMinusSecond), "Comparison direction: first-minus-second or second-minus-first")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "Fold case before comparing")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("file-column")
	_ = cmd.MarkFlagRequired("db-column")

	return cmd
}

func buildOptions(direction string, ignoreCase bool) (compare.Options, error) {
	parsed, err := compare.ParseDirection(direction)
	if err != nil {
		return compare.Options{}, err
	}
	return compare.Options{
		CaseSensitive: !ignoreCase,
		Direction:     parsed,
	}, nil
}

// emitReport writes the text report to the output file or stdout, then
// prints the total so the count is visible either way.
func emitReport(cmd *cobra.Command, result *compare.Result, output string) error {
	if output != "" {
		if err := report.WriteTextFile(output, result); err != nil {
			return err
		}
		cmd.Printf("Report written to %s\n", output)
	} else {
		cmd.Print(report.Text(result))
	}
	cmd.Printf("Total missing codes: %d\n", result.Count)
	return nil
}
