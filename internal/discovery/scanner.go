package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScenarioSuffix is the file name suffix that marks a scenario file
const ScenarioSuffix = ".scenario.yaml"

// Scanner scans for scenario files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all scenario files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scenario path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scenario path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(d.Name(), ScenarioSuffix) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
