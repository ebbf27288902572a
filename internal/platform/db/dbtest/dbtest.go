// Package dbtest starts a throwaway PostgreSQL for repository and
// end-to-end tests. Tests using it are tagged `integration`.
package dbtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hospital/records/internal/platform/db"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// Setup starts a shared container once per test binary, applies the
// embedded migrations and returns a fresh pool closed via t.Cleanup.
func Setup(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("dbtest: setup postgres: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, sharedDSN)
	if err != nil {
		t.Fatalf("dbtest: create pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// DSN returns the connection string of the shared container. Setup must
// have been called first.
func DSN() string { return sharedDSN }

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "hospitaltest",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/hospitaltest?sslmode=disable", host, port.Port())

	pool, err := db.NewPool(ctx, dsn, db.PoolOptions{MaxConns: 4})
	if err != nil {
		return "", err
	}
	defer pool.Close()

	if _, err := db.MigrateUp(ctx, pool); err != nil {
		return "", err
	}
	return dsn, nil
}
