package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/evanchen13/wb-sustainability/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(fetchedAt time.Time, usaRenewable float64) *models.Dataset {
	return &models.Dataset{
		FetchedAt: fetchedAt,
		Renewable: models.NewSeries(models.Indicator{ID: "EG.FEC.RNEW.ZS"}, []models.Observation{
			{CountryCode: "USA", CountryName: "United States", Year: 2014, Value: usaRenewable},
			{CountryCode: "CHN", CountryName: "China", Year: 2014, Value: 12.3},
		}),
		CO2: models.NewSeries(models.Indicator{ID: "EN.ATM.CO2E.PC"}, []models.Observation{
			{CountryCode: "USA", CountryName: "United States", Year: 2014, Value: 16.5},
		}),
	}
}

// archived reads one indicator back in year and country order.
func archived(t *testing.T, a ArchiveInterface, indicatorID string) []models.Observation {
	t.Helper()
	sa, ok := a.(*SQLArchive)
	require.True(t, ok)

	query := fmt.Sprintf(
		"SELECT country_code, country_name, year, value FROM %s WHERE indicator_id = %s ORDER BY year, country_code",
		observationsTable, sa.placeholders(1))
	rows, err := sa.db.QueryContext(context.Background(), query, indicatorID)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var out []models.Observation
	for rows.Next() {
		var o models.Observation
		require.NoError(t, rows.Scan(&o.CountryCode, &o.CountryName, &o.Year, &o.Value))
		out = append(out, o)
	}
	require.NoError(t, rows.Err())
	return out
}

func sqliteConfig(t *testing.T) *structures.Config {
	return &structures.Config{Store: structures.StoreConfig{
		Backend: SQLiteBackend,
		DSN:     filepath.Join(t.TempDir(), "archive.db"),
	}}
}

func TestNewArchive_NoneBackend(t *testing.T) {
	a, err := NewArchive(&structures.Config{Store: structures.StoreConfig{Backend: NoneBackend}}, &testutil.MockLogger{})
	require.NoError(t, err)
	assert.IsType(t, &noopArchive{}, a)

	ctx := context.Background()
	assert.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now(), 1)))
	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, a.Close())
}

func TestSQLArchive_SaveAndQuery(t *testing.T) {
	ctx := context.Background()
	a, err := NewArchive(sqliteConfig(t), &testutil.MockLogger{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now(), 9.1)))

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	obs := archived(t, a, "EG.FEC.RNEW.ZS")
	require.Len(t, obs, 2)
	assert.Equal(t, "CHN", obs[0].CountryCode)
	assert.Equal(t, "USA", obs[1].CountryCode)
	assert.Equal(t, 9.1, obs[1].Value)
}

func TestSQLArchive_UpsertReplacesValue(t *testing.T) {
	ctx := context.Background()
	a, err := NewArchive(sqliteConfig(t), &testutil.MockLogger{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	require.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now(), 9.1)))
	require.NoError(t, a.SaveDataset(ctx, sampleDataset(time.Now().Add(time.Hour), 9.3)))

	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	obs := archived(t, a, "EG.FEC.RNEW.ZS")
	assert.Equal(t, 9.3, obs[1].Value)
}

func TestSQLArchive_PostgresPlaceholders(t *testing.T) {
	a := &SQLArchive{backend: PostgreSQLBackend}
	assert.Equal(t, "$1, $2, $3", a.placeholders(3))
	assert.Contains(t, a.upsertQuery(), "ON CONFLICT")

	m := &SQLArchive{backend: MySQLBackend}
	assert.Equal(t, "?, ?", m.placeholders(2))
	assert.Contains(t, m.upsertQuery(), "ON DUPLICATE KEY UPDATE")
}

func TestMigrate_NoneBackend(t *testing.T) {
	_, err := Migrate(NoneBackend, "", -1)
	assert.Error(t, err)
}

func TestMigrate_UnknownBackend(t *testing.T) {
	_, err := Migrate("oracle", "", -1)
	assert.Error(t, err)
}

func TestMigrate_SQLiteUpDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	res, err := Migrate(SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, uint(1), res.To)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	res, err = Migrate(SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = Migrate(SQLiteBackend, dbPath, 0)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, uint(0), res.To)

	res, err = Migrate(SQLiteBackend, dbPath, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.To)
}
