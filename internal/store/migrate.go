package store

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationResult reports the schema version before and after a migration.
type MigrationResult struct {
	From    uint
	To      uint
	Changed bool
}

// Migrate runs the embedded migrations.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations.
// - If targetVersion > 0, it migrates to the specified version.
func Migrate(backend, dsn string, targetVersion int) (MigrationResult, error) {
	var res MigrationResult
	if backend == NoneBackend {
		return res, fmt.Errorf("migrations are not supported for the %s backend", NoneBackend)
	}

	db, err := openDB(backend, dsn)
	if err != nil {
		return res, err
	}
	defer func() { _ = db.Close() }()

	var driver database.Driver
	switch backend {
	case SQLiteBackend:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case MySQLBackend:
		driver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case PostgreSQLBackend:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	}
	if err != nil {
		return res, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return res, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return res, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "wbd", driver)
	if err != nil {
		return res, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return res, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return res, fmt.Errorf("database is in a dirty state at version %d", current)
	}
	res.From = current

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return res, fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
	}

	res.Changed = err == nil
	res.To, _, _ = m.Version()
	return res, nil
}
