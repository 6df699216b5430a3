// Package source re-exports the dataset source abstraction and selects a
// driver from configuration.
package source

import (
	"nuclidex/internal/source/core"
)

type (
	// Driver identifies a source backend.
	Driver = core.Driver
	// PutOptions configures a write.
	PutOptions = core.PutOptions
	// Info describes stored object metadata.
	Info = core.Info
	// Store is the interface for dataset source backends.
	Store = core.Store
)

const (
	DriverEmbedded   = core.DriverEmbedded
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	// ErrUnsupported indicates an operation isn't supported by a driver.
	ErrUnsupported = core.ErrUnsupported
	// ErrNotFound indicates a missing key.
	ErrNotFound = core.ErrNotFound
	// ErrExists indicates Put targeted an existing key.
	ErrExists = core.ErrExists
)
