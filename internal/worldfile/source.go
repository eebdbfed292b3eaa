// Package worldfile locates world files in local or cloud storage and reads
// the per-system tag records stored next to them, memoizing raw reads for
// the lifetime of a browsing session.
package worldfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File extensions of the world header and its tag container.
const (
	HeaderExt = ".wld"
	TagExt    = ".twld"
)

// ErrNotFound reports that a world file does not exist.
var ErrNotFound = errors.New("worldfile: not found")

// Location is the storage a world file lives in.
type Location int

const (
	Local Location = iota
	Cloud
)

func (l Location) String() string {
	if l == Cloud {
		return "cloud"
	}
	return "local"
}

// Key identifies one file in one storage location.
type Key struct {
	Path     string
	Location Location
}

// Source is the raw file access used by the cache.
type Source interface {
	Exists(path string, loc Location) bool
	ReadAll(path string, loc Location) ([]byte, error)
}

// FileStore is storage for one location.
type FileStore interface {
	Exists(path string) bool
	ReadAll(path string) ([]byte, error)
}

// Router dispatches to the store of each location. A nil Cloud store
// reports every cloud file as missing.
type Router struct {
	Local FileStore
	Cloud FileStore
}

// NewRouter routes local files to the filesystem and cloud files to cloud.
func NewRouter(cloud FileStore) Router {
	return Router{Local: Disk{}, Cloud: cloud}
}

func (r Router) store(loc Location) FileStore {
	if loc == Cloud {
		return r.Cloud
	}
	return r.Local
}

// Exists reports whether path exists in loc.
func (r Router) Exists(path string, loc Location) bool {
	s := r.store(loc)
	if s == nil {
		return false
	}
	return s.Exists(path)
}

// ReadAll reads path from loc.
func (r Router) ReadAll(path string, loc Location) ([]byte, error) {
	s := r.store(loc)
	if s == nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, path, loc)
	}
	return s.ReadAll(path)
}

// Disk is the local filesystem.
type Disk struct{}

func (Disk) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (Disk) ReadAll(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return buf, err
}

// WithExt replaces the extension of path.
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
