// Package tmpfile creates uniquely named transient files for plugins.
package tmpfile

import (
	"os"
	"path/filepath"
)

// Creator creates a uniquely named transient file with the given prefix
// and suffix, returning its path.
type Creator interface {
	Create(prefix, suffix string) (string, error)
}

// DirCreator creates transient files inside a fixed directory, creating
// the directory on first use.
type DirCreator struct {
	dir string
}

// NewDirCreator returns a Creator backed by the given directory
func NewDirCreator(dir string) *DirCreator {
	return &DirCreator{dir: dir}
}

// Create makes a new uniquely named file and returns its path
func (c *DirCreator) Create(prefix, suffix string) (string, error) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}

	// os.CreateTemp replaces the wildcard with a unique random string
	f, err := os.CreateTemp(c.dir, prefix+"*"+suffix)
	if err != nil {
		return "", err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}
