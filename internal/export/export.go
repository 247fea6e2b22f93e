package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const (
	TableOut   = "table"
	CSVOut     = "csv"
	JSONOut    = "json"
	ParquetOut = "parquet"
)

const missingValue = "n/a"

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	missingColor = color.New(color.FgHiBlack)
)

type Options struct {
	Format    string
	Precision int
	// Width overrides the detected terminal width for table output.
	Width int
}

// Write renders the joined table in a text format. Parquet needs a file and
// goes through WriteParquet.
func Write(w io.Writer, t *models.Table, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case JSONOut:
		return writeJSON(w, t)
	case CSVOut:
		return writeCSV(w, t, opts)
	case "", TableOut:
		return writeTable(w, t, opts)
	default:
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

func formatValue(v *float64, precision int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

func headers(t *models.Table) []string {
	return []string{"country_code", "country_name", "year", t.A.ID, t.B.ID}
}

func writeJSON(w io.Writer, t *models.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("error writing JSON output: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, t *models.Table, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers(t)); err != nil {
		return err
	}
	for _, r := range t.Records {
		row := []string{
			r.CountryCode,
			r.CountryName,
			strconv.Itoa(r.Year),
			formatValue(r.A, opts.Precision),
			formatValue(r.B, opts.Precision),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error writing CSV output: %w", err)
	}
	return nil
}

// tableWidth returns the override or the stdout terminal width, 80 otherwise.
func tableWidth(opts Options) int {
	if opts.Width > 0 {
		return opts.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func writeTable(w io.Writer, t *models.Table, opts Options) error {
	// code, year and two values take roughly 50 columns with borders
	nameWidth := max(tableWidth(opts)-50, 12)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Country", "Year", t.A.ID, t.B.ID})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	cell := func(v *float64) string {
		if v == nil {
			return missingColor.Sprint(missingValue)
		}
		return formatValue(v, opts.Precision)
	}

	data := make([][]string, 0, len(t.Records))
	for _, r := range t.Records {
		data = append(data, []string{
			r.CountryCode,
			truncate(r.CountryName, nameWidth),
			strconv.Itoa(r.Year),
			cell(r.A),
			cell(r.B),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	complete := t.Complete().Len()
	_, err := fmt.Fprintf(w, "%s %d rows, %d with both indicators\n", headerColor.Sprint("Joined:"), t.Len(), complete)
	return err
}
