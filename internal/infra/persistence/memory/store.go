// Package memory provides an in-process catalog snapshot store.
package memory

import (
	"context"
	"sync"

	"nuclidex/internal/infra/persistence"
	"nuclidex/pkg/domain"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps the encoded bucket payloads in memory so loads never alias the
// caller's slices.
type Store struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Save replaces the stored snapshot.
func (s *Store) Save(_ context.Context, cat domain.Catalog) error {
	payloads, err := persistence.Encode(cat)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payloads = payloads
	s.mu.Unlock()
	return nil
}

// Load decodes the stored snapshot.
func (s *Store) Load(_ context.Context) (domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return persistence.Decode(s.payloads)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
