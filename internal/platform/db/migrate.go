package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrationsFS returns the embedded goose migrations rooted at the
// migrations directory.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		panic(fmt.Sprintf("embedded migrations: %v", err))
	}
	return sub
}

// MigrationStatus represents the status of a migration (applied or pending).
type MigrationStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Migrator applies the embedded goose migrations through a database/sql
// handle opened on top of the pgx pool.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
}

// NewMigrator builds a goose provider over the pool. Close releases the
// database/sql wrapper but not the pool itself.
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	provider, err := newProvider(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Migrator{db: sqlDB, provider: provider}, nil
}

func newProvider(sqlDB *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, MigrationsFS())
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Up applies all pending migrations and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("apply migrations: %w", err)
	}
	return len(results), nil
}

// Status returns every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	raw, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}

	statuses := make([]MigrationStatus, 0, len(raw))
	for _, s := range raw {
		status := MigrationStatus{
			Version: s.Source.Version,
			Name:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		}
		if status.Applied {
			at := s.AppliedAt
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}

// MigrateUp is a convenience wrapper used by `serve` when AUTO_MIGRATE is on.
func MigrateUp(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	m, err := NewMigrator(pool)
	if err != nil {
		return 0, err
	}
	defer m.Close()
	return m.Up(ctx)
}
