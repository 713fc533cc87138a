package marketplace

import (
	"io/fs"
	"os"
	"sync"
)

// FileSystem abstracts the reads and writes the synchronizer performs so a
// dry run can exercise the identical code path with writes parameterized
// away. The real and dry-run implementations may never disagree on logic,
// only on whether bytes reach disk.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

// OSFileSystem reads and writes the real filesystem.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// OverlayFileSystem buffers writes in memory and serves them back on read,
// falling through to the underlying filesystem for untouched paths. Used
// for dry runs: post-write verification sees the projected state while the
// disk stays untouched.
type OverlayFileSystem struct {
	Base FileSystem

	mu      sync.Mutex
	pending map[string][]byte
}

// NewOverlay returns an overlay over base with no pending writes.
func NewOverlay(base FileSystem) *OverlayFileSystem {
	return &OverlayFileSystem{Base: base, pending: make(map[string][]byte)}
}

func (o *OverlayFileSystem) ReadFile(path string) ([]byte, error) {
	o.mu.Lock()
	data, ok := o.pending[path]
	o.mu.Unlock()
	if ok {
		return data, nil
	}
	return o.Base.ReadFile(path)
}

func (o *OverlayFileSystem) WriteFile(path string, data []byte, _ fs.FileMode) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[path] = append([]byte(nil), data...)
	return nil
}
