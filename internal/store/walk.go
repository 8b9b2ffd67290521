package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/LFroesch/cpass/internal/logger"
	"github.com/LFroesch/cpass/internal/tree"
)

const (
	// ItemSuffix marks a file as a stored secret.
	ItemSuffix = ".gpg"
	// ReservedDir is the store's own bookkeeping folder.
	ReservedDir = ".git"
)

// Walk lists every directory under root, children before their parents.
func Walk(root string) ([]tree.Listing, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read password store: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("password store %s is not a directory", root)
	}

	var listings []tree.Listing
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ReservedDir && path != root {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			logger.Warn("Cannot list %s: %v", path, err)
		}
		l := tree.Listing{Path: rel}
		for _, entry := range entries {
			name := entry.Name()
			switch {
			case entry.IsDir():
				if name != ReservedDir {
					l.Dirs = append(l.Dirs, name)
				}
			case strings.HasSuffix(name, ItemSuffix) && len(name) > len(ItemSuffix):
				l.Items = append(l.Items, strings.TrimSuffix(name, ItemSuffix))
			}
		}
		listings = append(listings, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk password store: %w", err)
	}

	// WalkDir is pre-order; reversed, every directory follows its children.
	for i, j := 0, len(listings)-1; i < j; i, j = i+1, j-1 {
		listings[i], listings[j] = listings[j], listings[i]
	}
	return listings, nil
}

// Load walks root and builds the directory cache from it.
func Load(root string) (*tree.Cache, error) {
	listings, err := Walk(root)
	if err != nil {
		return nil, err
	}
	return tree.Build(listings), nil
}
