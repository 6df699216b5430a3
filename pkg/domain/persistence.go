package domain

import "context"

// SnapshotStore persists a full catalog snapshot and restores it on start-up.
// Implementations replace the stored snapshot atomically on Save.
type SnapshotStore interface {
	Save(ctx context.Context, catalog Catalog) error
	Load(ctx context.Context) (Catalog, error)
}
