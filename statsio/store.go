// Package statsio persists pipeline artifacts: an object store over a
// filesystem abstraction plus CSV, JSON, parquet and GeoTIFF encodings of
// the per-field statistics.
package statsio

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrNotFound is returned by Get for objects that do not exist. Callers
// branch on it explicitly when falling back to generated data.
var ErrNotFound = errors.New("object not found")

// Store is a flat object store keyed by slash-separated names. A run's
// artifacts all go through one store so tests can swap in a memory
// backend.
type Store struct {
	fs afero.Fs
}

// NewDirStore stores objects under root on the OS filesystem.
func NewDirStore(root string) *Store {
	return &Store{fs: afero.NewBasePathFs(afero.NewOsFs(), root)}
}

// NewMemStore stores objects in memory. Used by tests and dry runs.
func NewMemStore() *Store {
	return &Store{fs: afero.NewMemMapFs()}
}

func (s *Store) Put(name string, data []byte) error {
	if dir := path.Dir(name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	logrus.Debugf("stored %s (%d bytes)", name, len(data))
	return nil
}

func (s *Store) Get(name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func (s *Store) Exists(name string) (bool, error) {
	return afero.Exists(s.fs, name)
}
