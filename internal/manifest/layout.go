package manifest

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Layout locates the files a manifest refers to.
type Layout struct {
	// Root is the directory that Filter.File entries are relative to.
	Root string
	// LibDir is the library directory: it holds the manifest and one
	// subdirectory per transform.
	LibDir string
}

// NewLayout derives the layout from the manifest path. An empty root defaults
// to the parent of the library directory, matching entries such as
// "lib/hankel/kong_61_2007_j0j1.txt" next to "lib/filters.json".
func NewLayout(manifestPath, root string) Layout {
	libDir := filepath.Dir(manifestPath)
	if root == "" {
		root = filepath.Dir(libDir)
	}

	return Layout{Root: root, LibDir: libDir}
}

// Path returns the on-disk path of the filter table.
func (l Layout) Path(f Filter) string {
	return filepath.Join(l.Root, filepath.FromSlash(f.File))
}

// LibPath returns the table path relative to LibDir, slash-separated. It
// fails when the table lies outside the library directory.
func (l Layout) LibPath(f Filter) (string, error) {
	absLib, err := filepath.Abs(l.LibDir)
	if err != nil {
		return "", err
	}

	absFile, err := filepath.Abs(l.Path(f))
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absLib, absFile)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", fmt.Errorf("%s is outside the library directory %s", f.File, l.LibDir)
	}

	return rel, nil
}
