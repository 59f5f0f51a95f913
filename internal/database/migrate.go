package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:blankimports // File source driver

	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
)

// DefaultMigrationsPath is the migrations directory relative to the working directory.
const DefaultMigrationsPath = "migrations"

// RunMigrations applies all pending migrations from dir.
func RunMigrations(cfg Config, dir string, log infralogger.Logger) error {
	return withMigrator(cfg, dir, func(m *migrate.Migrate, path string) error {
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info("No pending migrations", infralogger.String("migrations_path", path))
				return nil
			}
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("Migrations applied successfully", infralogger.String("migrations_path", path))
		return nil
	})
}

// MigrateDown rolls back steps migrations (at least one).
func MigrateDown(cfg Config, dir string, steps int, log infralogger.Logger) error {
	if steps <= 0 {
		steps = 1
	}
	return withMigrator(cfg, dir, func(m *migrate.Migrate, path string) error {
		if err := m.Steps(-steps); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info("No migrations to rollback", infralogger.String("migrations_path", path))
				return nil
			}
			return fmt.Errorf("rollback migrations: %w", err)
		}
		log.Info("Migrations rolled back successfully",
			infralogger.String("migrations_path", path),
			infralogger.Int("steps", steps),
		)
		return nil
	})
}

// withMigrator opens a dedicated connection for the migrator; closing the
// migrator closes it.
func withMigrator(cfg Config, dir string, fn func(m *migrate.Migrate, path string) error) error {
	if cfg.Host == "" {
		return ErrNotConfigured
	}
	if dir == "" {
		dir = DefaultMigrationsPath
	}
	if absPath, err := filepath.Abs(dir); err == nil {
		dir = absPath
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database connection: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	return fn(m, dir)
}
