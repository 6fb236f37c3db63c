// Package fs provides file-based storage for crawl state.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitecrawl"
)

// Ensure Dir implements sitecrawl.Storage at compile time.
var _ sitecrawl.Storage = (*Dir)(nil)

// Dir stores crawl state files in a single directory.
// Writes go to a temporary file that is renamed over the target, so a
// crash mid-write leaves the previous version intact.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at root without touching the filesystem.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Open creates the directory if it does not already exist.
// It is safe to call on an existing directory.
func (d *Dir) Open() error {
	if d.root == "" {
		return sitecrawl.Errorf(sitecrawl.EINVALID, "storage directory required")
	}
	return os.MkdirAll(d.root, 0755)
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// Path returns the full path of the named file.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.root, name)
}

// WriteFile replaces the named file with data.
func (d *Dir) WriteFile(name string, data []byte) error {
	target := d.Path(name)

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	// Rename is atomic on the same filesystem.
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// ReadFile returns the contents of the named file.
// Returns ENOTFOUND if it does not exist.
func (d *Dir) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "%s does not exist", d.Path(name))
	}
	return data, err
}
