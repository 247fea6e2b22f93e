package commands

import (
	"fmt"
	"strings"

	"github.com/evanchen13/wb-sustainability/internal/di"
	"github.com/evanchen13/wb-sustainability/internal/export"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	format    string
	output    string
	year      int
	complete  bool
	precision int
}

func newExportCmd(flags *structures.CliFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch both indicators and write the joined table",
		Long: `Fetch renewable energy consumption and CO2 emissions per capita, join them
on country and year and write the result. Missing values stay empty.

Examples:
  wbdash export --year 2014 --complete
  wbdash export --format csv --output joined.csv
  wbdash export --format parquet --output joined.parquet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", export.TableOut,
		fmt.Sprintf("output format (%s)", strings.Join([]string{export.TableOut, export.CSVOut, export.JSONOut, export.ParquetOut}, ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, stdout when empty (required for parquet)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "only export this year")
	cmd.Flags().BoolVar(&opts.complete, "complete", false, "only export rows with both indicator values")
	cmd.Flags().IntVar(&opts.precision, "precision", 2, "decimal places for table and CSV values")
	return cmd
}

func runExport(cmd *cobra.Command, flags *structures.CliFlags, opts *exportOptions) error {
	if opts.format == export.ParquetOut && opts.output == "" {
		return fmt.Errorf("--output is required for %s export", export.ParquetOut)
	}

	conf, err := loadConfig(flags)
	if err != nil {
		return err
	}
	service, cleanup, err := di.InitDashboardService(conf)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := service.Table(cmd.Context())
	if err != nil {
		return err
	}
	if opts.year > 0 {
		table = table.ForYear(opts.year)
	}
	if opts.complete {
		table = table.Complete()
	}

	if opts.format == export.ParquetOut {
		if err := export.WriteParquet(table, opts.output); err != nil {
			return err
		}
		return printDone(cmd, fmt.Sprintf("wrote %d rows to %s", table.Len(), opts.output))
	}

	w, closeOut, err := outputWriter(cmd, opts.output)
	if err != nil {
		return err
	}
	writeErr := export.Write(w, table, export.Options{Format: opts.format, Precision: opts.precision})
	if err := closeOut(); err != nil && writeErr == nil {
		writeErr = err
	}
	return writeErr
}
