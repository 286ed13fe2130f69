package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Walker lists candidate files below a data root.
type Walker interface {
	// ListFiles returns every regular file under root in a stable order.
	ListFiles(root string) ([]string, error)
	// IsIgnored reports whether path must be excluded regardless of naming patterns.
	IsIgnored(root, path string) bool
}

// DirWalker walks the local filesystem in lexical order.
type DirWalker struct{}

// ListFiles walks root recursively. Ignored directories are not descended into.
func (w DirWalker) ListFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat data root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data root %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && w.IsIgnored(root, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk data root %s: %w", root, err)
	}
	return files, nil
}

// IsIgnored reports whether any segment of path below root starts with '.', '_' or '~'.
// This covers hidden files, drafts and the lock files office suites leave next to open workbooks.
func (DirWalker) IsIgnored(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == "" || seg == ".." {
			continue
		}
		switch seg[0] {
		case '.', '_', '~':
			return true
		}
	}
	return false
}
