package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker lists the assets below a web root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkKeys yields the storage key of every regular file below root, in lexical order.
// Hidden directories such as .git are skipped.
func (w *Walker) WalkKeys(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, not fatal.
				return nil //nolint:nilerr // Continue walking the rest of the tree
			}

			if d.IsDir() {
				if path != root && w.shouldSkip(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil //nolint:nilerr // Paths from WalkDir are always below root
			}
			if !yield("/" + filepath.ToSlash(rel)) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkip(name string) bool {
	return strings.HasPrefix(name, ".")
}
