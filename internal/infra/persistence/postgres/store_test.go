package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"nuclidex/internal/infra/persistence/postgres/testutil"
	"nuclidex/pkg/domain"
)

func newStubStore(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" || dsn != DefaultDSN {
			return nil, fmt.Errorf("unexpected open %s %s", driverName, dsn)
		}
		return db, nil
	})
	t.Cleanup(restore)
	s, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, conn
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, conn := newStubStore(t)
	if len(conn.Execs) == 0 || !strings.Contains(conn.Execs[0], "CREATE TABLE IF NOT EXISTS state") {
		t.Fatalf("expected state table ddl, got %v", conn.Execs)
	}
	if _, err := s.Load(ctx); !errors.Is(err, domain.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	cat := domain.Catalog{
		Elements: []domain.ElementRecord{{Number: 43, Symbol: "Tc", Name: "Technetium"}},
		Nuclides: []domain.NuclideDecayRecord{{Z: 43, N: 56, Symbol: "Tc", HalfLifeSeconds: "6.662e12", DecayMode: "B-"}},
	}
	if err := s.Save(ctx, cat); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, cat); err != nil {
		t.Fatalf("resave: %v", err)
	}
	if n := len(conn.Tables["state"]); n != 3 {
		t.Fatalf("expected 3 bucket rows after upserts, got %d", n)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Elements[0] != cat.Elements[0] || got.Nuclides[0] != cat.Nuclides[0] || len(got.Isotopes) != 0 {
		t.Fatalf("round trip mismatch %+v", got)
	}
	if s.DB() == nil {
		t.Fatalf("expected db handle")
	}
}

func TestStore_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("open", func(t *testing.T) {
		restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return nil, fmt.Errorf("boom") })
		defer restore()
		if _, err := NewStore(ctx, "postgres://x"); err == nil || !strings.Contains(err.Error(), "open postgres") {
			t.Fatalf("expected open error, got %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		db, conn := testutil.NewStubDB()
		conn.FailPing = true
		restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
		defer restore()
		if _, err := NewStore(ctx, ""); err == nil || !strings.Contains(err.Error(), "ping postgres") {
			t.Fatalf("expected ping error, got %v", err)
		}
	})

	t.Run("ddl", func(t *testing.T) {
		db, conn := testutil.NewStubDB()
		conn.FailExec = true
		restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
		defer restore()
		if _, err := NewStore(ctx, ""); err == nil || !strings.Contains(err.Error(), "ensure state table") {
			t.Fatalf("expected ddl error, got %v", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		s, conn := newStubStore(t)
		conn.FailBegin = true
		if err := s.Save(ctx, domain.Catalog{}); err == nil {
			t.Fatalf("expected begin error")
		}
		conn.FailBegin, conn.FailExec = false, true
		if err := s.Save(ctx, domain.Catalog{}); err == nil || !strings.Contains(err.Error(), "upsert elements") {
			t.Fatalf("expected upsert error, got %v", err)
		}
		conn.FailExec, conn.FailCommit = false, true
		if err := s.Save(ctx, domain.Catalog{}); err == nil || !strings.Contains(err.Error(), "commit snapshot") {
			t.Fatalf("expected commit error, got %v", err)
		}
		conn.FailQuery = true
		if _, err := s.Load(ctx); err == nil {
			t.Fatalf("expected query error")
		}
		conn.FailQuery, conn.RowsErr = false, fmt.Errorf("rows broke")
		if _, err := s.Load(ctx); err == nil || !strings.Contains(err.Error(), "iterate state") {
			t.Fatalf("expected rows error, got %v", err)
		}
	})
}
