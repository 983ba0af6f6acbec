package index

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Index maintains the symbol index over a project tree.
type Index struct {
	store *Store
}

// Open opens (and migrates) the index database at dbPath.
func Open(dbPath string) (*Index, error) {
	s, err := NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return &Index{store: s}, nil
}

// Close releases the index's database resources.
func (ix *Index) Close() error {
	return ix.store.Close()
}

// IndexFiles extracts and stores symbols for the given source files.
// Unchanged files are detected via content hashing and skipped.
func (ix *Index) IndexFiles(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("index: read %s: %w", path, err)
		}
		hash := fmt.Sprintf("%x", sha256.Sum256(src))
		stored, err := ix.store.FileHash(path)
		if err != nil {
			return err
		}
		if stored == hash {
			continue
		}
		symbols, err := extract(ctx, src)
		if err != nil {
			return err
		}
		if err := ix.store.ReplaceFile(path, hash, symbols); err != nil {
			return err
		}
	}
	return nil
}

// IndexDir walks root and indexes every Go source file under it, skipping
// hidden directories and testdata.
func (ix *Index) IndexDir(ctx context.Context, root string) error {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".go") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index: walk %s: %w", root, err)
	}
	return ix.IndexFiles(ctx, paths)
}

// Lookup returns the indexed declaration sites for a fully-qualified name.
func (ix *Index) Lookup(fqn string) ([]Location, error) {
	return ix.store.SymbolsByFQN(fqn)
}
