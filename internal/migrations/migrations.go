package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var Files embed.FS

// RunMigrations brings the user_behavior_logs schema up to date.
// With autoMigrate disabled it only reports the current version.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	src, err := iofs.New(Files, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := newMigrator(db, src)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if !autoMigrate {
		slog.Info("[Migrations] Auto-migrate disabled", "version", version, "dirty", dirty)
		return nil
	}

	if dirty {
		target, err := forceTarget(src, version)
		if err != nil {
			return err
		}
		slog.Warn("[Migrations] Schema left dirty by an interrupted run, re-running last migration",
			"version", version, "forced_to", target)

		// Up scripts are idempotent DDL, so the half-applied migration can run again.
		if err := m.Force(target); err != nil {
			return fmt.Errorf("failed to clear dirty state at version %d: %w", version, err)
		}
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Schema up to date", "version", version)
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version after migrate: %w", err)
	}

	slog.Info("[Migrations] Applied", "from_version", version, "to_version", newVersion)
	return nil
}

// forceTarget is the version before the dirty one, or NilVersion when it was the first.
func forceTarget(src source.Driver, dirty uint) (int, error) {
	prev, err := src.Prev(dirty)
	if errors.Is(err, fs.ErrNotExist) {
		return database.NilVersion, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find migration before version %d: %w", dirty, err)
	}
	return int(prev), nil
}

func newMigrator(db *sql.DB, src source.Driver) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
