// Package embedded serves the sample datasets bundled into the binary.
package embedded

import (
	"bytes"
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"mime"
	"path"
	"sort"
	"strings"

	"nuclidex/internal/source/core"
)

//go:embed data
var files embed.FS

// Store implements core.Store over the embedded data directory. It is read-only.
type Store struct {
	fsys iofs.FS
}

// New returns the embedded sample dataset store.
func New() *Store {
	sub, err := iofs.Sub(files, "data")
	if err != nil {
		panic(err) // the directory is compiled in
	}
	return &Store{fsys: sub}
}

// Driver returns the source driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverEmbedded }

// Put is unsupported.
func (s *Store) Put(context.Context, string, io.Reader, core.PutOptions) (core.Info, error) {
	return core.Info{}, core.ErrUnsupported
}

// Delete is unsupported.
func (s *Store) Delete(context.Context, string) (bool, error) {
	return false, core.ErrUnsupported
}

func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	b, err := iofs.ReadFile(s.fsys, key)
	if err != nil {
		return core.Info{}, nil, s.wrap(key, err)
	}
	return infoFor(key, b), io.NopCloser(bytes.NewReader(b)), nil
}

func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	b, err := iofs.ReadFile(s.fsys, key)
	if err != nil {
		return core.Info{}, s.wrap(key, err)
	}
	return infoFor(key, b), nil
}

func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	err := iofs.WalkDir(s.fsys, ".", func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasPrefix(p, prefix) {
			return err
		}
		b, err := iofs.ReadFile(s.fsys, p)
		if err != nil {
			return err
		}
		infos = append(infos, infoFor(p, b))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *Store) wrap(key string, err error) error {
	if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, iofs.ErrInvalid) {
		return fmt.Errorf("dataset %s: %w", key, core.ErrNotFound)
	}
	return err
}

func infoFor(key string, b []byte) core.Info {
	sum := sha256.Sum256(b)
	return core.Info{
		Key:         key,
		Size:        int64(len(b)),
		ContentType: mime.TypeByExtension(path.Ext(key)),
		ETag:        hex.EncodeToString(sum[:]),
	}
}
