package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/cpass/internal/tree"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func buildStore(t *testing.T) string {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".gpg-id"))
	touch(t, filepath.Join(root, "a.gpg"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "b", "inner.gpg"))
	touch(t, filepath.Join(root, "b", "deep", "x.gpg"))
	touch(t, filepath.Join(root, ".git", "HEAD"))
	touch(t, filepath.Join(root, ".git", "objects", "y.gpg"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))
	return root
}

func TestWalkIsBottomUp(t *testing.T) {
	root := buildStore(t)

	listings, err := Walk(root)
	require.NoError(t, err)

	seen := map[string]int{}
	for i, l := range listings {
		seen[l.Path] = i
	}
	require.Len(t, seen, 4, "expected root, b, b/deep and empty")
	assert.NotContains(t, seen, ".git")
	assert.NotContains(t, seen, ".git/objects")

	assert.Less(t, seen["b/deep"], seen["b"])
	assert.Less(t, seen["b"], seen[""])
	assert.Less(t, seen["empty"], seen[""])

	rootListing := listings[seen[""]]
	assert.ElementsMatch(t, []string{"b", "empty"}, rootListing.Dirs)
	assert.Equal(t, []string{"a"}, rootListing.Items)
}

func TestLoadBuildsCounts(t *testing.T) {
	root := buildStore(t)

	c, err := Load(root)
	require.NoError(t, err)

	nodes := c.Nodes("")
	require.Len(t, nodes, 3)
	assert.Equal(t, tree.Dir("b", 2), nodes[0])
	assert.Equal(t, tree.Dir("empty", 0), nodes[1])
	assert.Equal(t, tree.Leaf("a"), nodes[2])
	assert.True(t, c.Nodes("empty")[0].IsEmpty())
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
