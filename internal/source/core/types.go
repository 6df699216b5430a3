// Package core defines the dataset source abstraction implemented by the
// infra drivers and consumed by the loader.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete dataset source backend.
type Driver string

const (
	// DriverEmbedded serves the sample datasets compiled into the binary.
	DriverEmbedded Driver = "embedded" // default
	// DriverFilesystem reads datasets from a local directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 reads datasets from an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps datasets in process memory (tests).
	DriverMemory Driver = "memory"
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string            // MIME type, optional
	Metadata    map[string]string // small, flat key-value
}

// Info describes a stored dataset object.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a thin S3-like object abstraction over dataset files.
type Store interface {
	// Put stores a new object at key and fails if the key already exists.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get returns object metadata and content. Missing keys wrap ErrNotFound.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Head returns metadata only.
	Head(ctx context.Context, key string) (Info, error)
	// Delete removes an object, returning false if it did not exist.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns objects whose key has prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

var (
	// ErrUnsupported is returned when a driver cannot perform an operation.
	ErrUnsupported = errors.New("source: unsupported operation")
	// ErrNotFound is wrapped by drivers when a key does not exist.
	ErrNotFound = errors.New("source: object not found")
	// ErrExists is wrapped by Put when the key is already taken.
	ErrExists = errors.New("source: object already exists")
)
