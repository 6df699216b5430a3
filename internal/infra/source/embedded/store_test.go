package embedded

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"nuclidex/internal/source/core"
)

func TestStore_ServesBundledDatasets(t *testing.T) {
	store := New()
	ctx := context.Background()
	list, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"elements.json", "isotopes.json", "nuclides.csv"}
	if len(list) != len(want) {
		t.Fatalf("expected %d datasets, got %+v", len(want), list)
	}
	for i, k := range want {
		if list[i].Key != k || list[i].Size == 0 || list[i].ETag == "" {
			t.Fatalf("unexpected entry %d: %+v", i, list[i])
		}
	}
	_, rc, err := store.Get(ctx, "nuclides.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.HasPrefix(b, []byte("z,n,symbol,half_life_sec,decay_1\n")) {
		t.Fatalf("unexpected header in %q", b[:40])
	}
}

func TestStore_ReadOnly(t *testing.T) {
	store := New()
	ctx := context.Background()
	if store.Driver() != core.DriverEmbedded {
		t.Fatalf("expected embedded driver")
	}
	if _, err := store.Put(ctx, "x", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported put, got %v", err)
	}
	if _, err := store.Delete(ctx, "elements.json"); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported delete, got %v", err)
	}
	if _, err := store.Head(ctx, "missing.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Head(ctx, "../escape"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected invalid path as not found, got %v", err)
	}
}
