package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

// Migrator applies the embedded goose migrations.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewMigrator(db *sql.DB, migrations fs.FS, logger *slog.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("could not set goose dialect to postgres: %w", err)
	}
	return &Migrator{db: db, logger: logger.With("component", "Migrator")}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	m.logger.InfoContext(ctx, "Applying database migrations")
	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}

func (m *Migrator) Down(ctx context.Context) error {
	m.logger.InfoContext(ctx, "Rolling back the latest migration")
	if err := goose.DownContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("could not roll back migration: %w", err)
	}
	return nil
}

func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("could not read migration status: %w", err)
	}
	return nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("could not read migration version: %w", err)
	}
	return version, nil
}
