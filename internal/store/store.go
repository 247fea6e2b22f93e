package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/structures"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	NoneBackend       = "none"
	SQLiteBackend     = "sqlite"
	PostgreSQLBackend = "postgresql"
	MySQLBackend      = "mysql"
)

const observationsTable = "observations"

// ArchiveInterface keeps every fetched observation. Count feeds the
// archived_observations field of /health.
type ArchiveInterface interface {
	SaveDataset(ctx context.Context, d *models.Dataset) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type SQLArchive struct {
	db      *sql.DB
	backend string
	logger  providers.Logger
}

var _ ArchiveInterface = &SQLArchive{}

// DefaultSQLitePath is used when the sqlite backend has no DSN.
func DefaultSQLitePath() string {
	return filepath.Join(os.TempDir(), "wbd-archive.db")
}

func driverName(backend string) (string, error) {
	switch backend {
	case SQLiteBackend:
		return "sqlite", nil
	case MySQLBackend:
		return "mysql", nil
	case PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

func openDB(backend, dsn string) (*sql.DB, error) {
	name, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	if backend == SQLiteBackend && dsn == "" {
		dsn = DefaultSQLitePath()
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == SQLiteBackend {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}
	return db, nil
}

// NewArchive opens the configured backend and migrates it to the latest schema.
// The none backend yields an archive that drops everything.
func NewArchive(conf *structures.Config, logger providers.Logger) (ArchiveInterface, error) {
	backend, dsn := conf.Store.Backend, conf.Store.DSN
	if backend == "" || backend == NoneBackend {
		return &noopArchive{}, nil
	}

	if _, err := Migrate(backend, dsn, -1); err != nil {
		return nil, err
	}
	db, err := openDB(backend, dsn)
	if err != nil {
		return nil, err
	}

	logger.Infof(providers.TypeApp, "Observation archive ready: %s", backend)
	return &SQLArchive{db: db, backend: backend, logger: logger}, nil
}

func (a *SQLArchive) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		if a.backend == PostgreSQLBackend {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return strings.Join(ph, ", ")
}

func (a *SQLArchive) upsertQuery() string {
	insert := fmt.Sprintf(
		"INSERT INTO %s (indicator_id, country_code, country_name, year, value, fetched_at) VALUES (%s)",
		observationsTable, a.placeholders(6))

	if a.backend == MySQLBackend {
		return insert + " ON DUPLICATE KEY UPDATE country_name = VALUES(country_name), value = VALUES(value), fetched_at = VALUES(fetched_at)"
	}
	return insert + " ON CONFLICT (indicator_id, country_code, year) DO UPDATE SET" +
		" country_name = excluded.country_name, value = excluded.value, fetched_at = excluded.fetched_at"
}

// SaveDataset upserts both series in one transaction.
func (a *SQLArchive) SaveDataset(ctx context.Context, d *models.Dataset) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, a.upsertQuery())
	if err != nil {
		return fmt.Errorf("prepare archive upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	fetchedAt := d.FetchedAt.UTC()
	for _, s := range []models.Series{d.Renewable, d.CO2} {
		for _, o := range s.Observations {
			if _, err := stmt.ExecContext(ctx, s.Indicator.ID, o.CountryCode, o.CountryName, o.Year, o.Value, fetchedAt); err != nil {
				return fmt.Errorf("archive %s %s/%d: %w", s.Indicator.ID, o.CountryCode, o.Year, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive transaction: %w", err)
	}
	a.logger.Debugf(providers.TypeApp, "Archived %d observations", d.Renewable.Len()+d.CO2.Len())
	return nil
}

func (a *SQLArchive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+observationsTable).Scan(&n)
	return n, err
}

func (a *SQLArchive) Close() error {
	return a.db.Close()
}

type noopArchive struct{}

func (n *noopArchive) SaveDataset(_ context.Context, _ *models.Dataset) error { return nil }
func (n *noopArchive) Count(_ context.Context) (int, error) { return 0, nil }
func (n *noopArchive) Close() error                         { return nil }
