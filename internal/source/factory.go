package source

import (
	"context"
	"fmt"

	"nuclidex/internal/infra/source/embedded"
	"nuclidex/internal/infra/source/fs"
	"nuclidex/internal/infra/source/memory"
	infraS3 "nuclidex/internal/infra/source/s3"
)

// S3Config re-exports the infra S3 configuration.
type S3Config = infraS3.Config

// Config selects and configures a source driver.
type Config struct {
	Driver Driver   `yaml:"driver"`
	FSRoot string   `yaml:"fs_root"` // directory root when Driver is fs (default ./datasets)
	S3     S3Config `yaml:"s3"`
}

// Open constructs the configured Store. An empty driver selects the
// embedded sample datasets.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverEmbedded
	}
	switch driver {
	case DriverEmbedded:
		return embedded.New(), nil
	case DriverFilesystem:
		st, err := fs.New(cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return st, nil
	case DriverS3:
		st, err := infraS3.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return st, nil
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown source driver %s", driver)
	}
}

// NewMemory returns an empty in-memory Store.
func NewMemory() Store { return memory.New() }

// NewMockS3ForTests exposes the in-process S3 fake for cross-package tests.
func NewMockS3ForTests() Store { return infraS3.NewMockForTests() }
