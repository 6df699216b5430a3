// Package storage selects a catalog snapshot store from configuration.
package storage

import (
	"context"
	"fmt"

	"nuclidex/internal/infra/persistence/memory"
	"nuclidex/internal/infra/persistence/postgres"
	"nuclidex/internal/infra/persistence/sqlite"
	"nuclidex/pkg/domain"
)

// Driver identifies a concrete snapshot store implementation.
type Driver string

const (
	Memory   Driver = "memory"   // in-memory only (tests / ephemeral)
	SQLite   Driver = "sqlite"   // embedded sqlite file
	Postgres Driver = "postgres" // PostgreSQL server
)

// Config selects and configures the snapshot store.
type Config struct {
	Driver      Driver `yaml:"driver"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Store is a snapshot store that owns a connection.
type Store interface {
	domain.SnapshotStore
	Close() error
}

// Open constructs the configured store. An empty driver selects sqlite.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = SQLite
	}
	switch driver {
	case Memory:
		return memory.NewStore(), nil
	case SQLite:
		st, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	case Postgres:
		st, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
