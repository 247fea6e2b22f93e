package export

import (
	"fmt"
	"io"
	"os"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/parquet-go/parquet-go"
)

// Row is the Parquet schema of one joined record.
type Row struct {
	CountryCode string   `parquet:"country_code,snappy"`
	CountryName string   `parquet:"country_name,snappy"`
	Year        int32    `parquet:"year,snappy"`
	Renewable   *float64 `parquet:"renewable,optional,snappy"`
	CO2         *float64 `parquet:"co2,optional,snappy"`
}

func ConvertRows(t *models.Table) []Row {
	rows := make([]Row, 0, t.Len())
	for _, r := range t.Records {
		rows = append(rows, Row{
			CountryCode: r.CountryCode,
			CountryName: r.CountryName,
			Year:        int32(r.Year),
			Renewable:   r.A,
			CO2:         r.B,
		})
	}
	return rows
}

// WriteParquetTo streams the table as Parquet.
func WriteParquetTo(w io.Writer, t *models.Table) error {
	writer := parquet.NewGenericWriter[Row](w)
	if _, err := writer.Write(ConvertRows(t)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

func WriteParquet(t *models.Table, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteParquetTo(file, t); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
