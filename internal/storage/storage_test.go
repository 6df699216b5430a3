package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"nuclidex/internal/infra/persistence/postgres"
	"nuclidex/internal/infra/persistence/postgres/testutil"
	"nuclidex/pkg/domain"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	db, _ := testutil.NewStubDB()
	restore := postgres.OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
	defer restore()

	cases := []Config{
		{Driver: Memory},
		{SQLitePath: filepath.Join(t.TempDir(), "default.db")},
		{Driver: SQLite, SQLitePath: filepath.Join(t.TempDir(), "explicit.db")},
		{Driver: Postgres, PostgresDSN: "postgres://stub"},
	}
	for _, cfg := range cases {
		st, err := Open(ctx, cfg)
		if err != nil {
			t.Fatalf("open %q: %v", cfg.Driver, err)
		}
		cat := domain.Catalog{Elements: []domain.ElementRecord{{Number: 2, Symbol: "He", Abundance: 0.008}}}
		if err := st.Save(ctx, cat); err != nil {
			t.Fatalf("save %q: %v", cfg.Driver, err)
		}
		got, err := st.Load(ctx)
		if err != nil || got.Elements[0].Symbol != "He" {
			t.Fatalf("load %q: %v %+v", cfg.Driver, err, got)
		}
		if err := st.Close(); err != nil {
			t.Fatalf("close %q: %v", cfg.Driver, err)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "redis"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
