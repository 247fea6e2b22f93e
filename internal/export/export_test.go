package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/evanchen13/wb-sustainability/internal/models"
	json "github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTable() *models.Table {
	renewable := models.NewSeries(models.Indicator{ID: "EG.FEC.RNEW.ZS", Name: "Renewable"}, []models.Observation{
		{CountryCode: "DEU", CountryName: "Germany", Year: 2014, Value: 13.6},
		{CountryCode: "USA", CountryName: "United States", Year: 2014, Value: 9.1},
	})
	co2 := models.NewSeries(models.Indicator{ID: "EN.ATM.CO2E.PC", Name: "CO2"}, []models.Observation{
		{CountryCode: "DEU", CountryName: "Germany", Year: 2014, Value: 8.9},
		{CountryCode: "FRA", CountryName: "France", Year: 2014, Value: 4.6},
	})
	return models.Join(renewable, co2)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixtureTable(), Options{Format: CSVOut, Precision: 2}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"country_code", "country_name", "year", "EG.FEC.RNEW.ZS", "EN.ATM.CO2E.PC"}, rows[0])
	assert.Equal(t, []string{"DEU", "Germany", "2014", "13.60", "8.90"}, rows[1])
	assert.Equal(t, []string{"FRA", "France", "2014", "", "4.60"}, rows[2])
	assert.Equal(t, []string{"USA", "United States", "2014", "9.10", ""}, rows[3])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixtureTable(), Options{Format: JSONOut}))

	var decoded models.Table
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Records, 3)
	assert.Equal(t, "EG.FEC.RNEW.ZS", decoded.A.ID)
	assert.Nil(t, decoded.Records[1].A)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixtureTable(), Options{Format: TableOut, Precision: 1, Width: 120}))

	out := buf.String()
	assert.Contains(t, out, "Germany")
	assert.Contains(t, out, "13.6")
	assert.Contains(t, out, missingValue)
	assert.Contains(t, out, "3 rows, 1 with both indicators")
}

func TestWriteTableTruncatesNames(t *testing.T) {
	table := fixtureTable()
	table.Records[2].CountryName = "United States of a Very Long Country Name Indeed"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, table, Options{Width: 40}))
	assert.NotContains(t, buf.String(), "Indeed")
}

func TestWriteUnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, fixtureTable(), Options{Format: "xml"})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abc", truncate("abc", 2))
}

func TestWriteParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joined.parquet")
	require.NoError(t, WriteParquet(fixtureTable(), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Row](file)
	defer func() { _ = reader.Close() }()
	require.EqualValues(t, 3, reader.NumRows())

	rows := make([]Row, 3)
	n, _ := reader.Read(rows)
	require.Equal(t, 3, n)

	assert.Equal(t, "DEU", rows[0].CountryCode)
	require.NotNil(t, rows[0].Renewable)
	assert.InDelta(t, 13.6, *rows[0].Renewable, 1e-9)
	assert.Nil(t, rows[1].Renewable)
	require.NotNil(t, rows[1].CO2)
	assert.InDelta(t, 4.6, *rows[1].CO2, 1e-9)
	assert.Nil(t, rows[2].CO2)
	assert.EqualValues(t, 2014, rows[2].Year)
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteParquet(fixtureTable(), filepath.Join(t.TempDir(), "missing", "x.parquet"))
	assert.Error(t, err)
}
