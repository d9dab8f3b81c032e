package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveExampleTree(t *testing.T) {
	root := exampleTree(t)
	w := newTestWalker(t)

	records, err := w.RetrieveFiles(context.Background(), root, 2, "")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"notes.txt", "sub", "sub/foo.py"}, relPaths(records))

	notes := records[0]
	assert.Equal(t, 1, notes.Depth)
	require.NotNil(t, notes.Size)
	assert.Equal(t, int64(12), *notes.Size)

	sub := records[1]
	assert.True(t, sub.IsDir)
	require.NotNil(t, sub.ChildrenCount)
	assert.Equal(t, 1, *sub.ChildrenCount)

	assert.Equal(t, 2, records[2].Depth)
	for _, r := range records {
		assert.NotContains(t, r.Path, ".git")
	}
}

func TestRetrieveExtensionFilter(t *testing.T) {
	root := exampleTree(t)
	w := newTestWalker(t)

	records, err := w.RetrieveFiles(context.Background(), root, 2, "py")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "sub/foo.py"}, relPaths(records))
}

func TestRetrieveDepthBound(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/b/c/d.txt": "deep",
		"a/top.txt":   "top",
	})
	w := newTestWalker(t)

	tests := []struct {
		depth int
		want  []string
	}{
		{1, []string{"a"}},
		{2, []string{"a", "a/b", "a/top.txt"}},
		{3, []string{"a", "a/b", "a/b/c", "a/top.txt"}},
		{10, []string{"a", "a/b", "a/b/c", "a/b/c/d.txt", "a/top.txt"}},
	}

	for _, tt := range tests {
		records, err := w.RetrieveFiles(context.Background(), root, tt.depth, "")
		require.NoError(t, err)
		assert.Equal(t, tt.want, relPaths(records), "depth %d", tt.depth)
		for _, r := range records {
			assert.LessOrEqual(t, r.Depth, tt.depth)
		}
	}
}

func TestRetrieveDirectoryPrecedesDescendants(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"x/1.txt":   "1",
		"x/y/2.txt": "2",
		"z/3.txt":   "3",
	})
	w := newTestWalker(t)

	records, err := w.RetrieveFiles(context.Background(), root, 5, "")
	require.NoError(t, err)

	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.RelativePath] = i
	}
	assert.Less(t, index["x"], index["x/1.txt"])
	assert.Less(t, index["x"], index["x/y"])
	assert.Less(t, index["x/y"], index["x/y/2.txt"])
	assert.Less(t, index["z"], index["z/3.txt"])
}

func TestRetrieveIgnoreIsRootRelative(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"web/node_modules/react/index.js": "x",
		"web/app.js":                      "x",
		"web/debug.log":                   "x",
		"py/__pycache__/m.pyc":            "x",
	})
	w := newTestWalker(t)

	records, err := w.RetrieveFiles(context.Background(), root, 5, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"py", "web", "web/app.js"}, relPaths(records))
}

func TestRetrieveFileRoot(t *testing.T) {
	root := exampleTree(t)
	w := newTestWalker(t)
	file := filepath.Join(root, "notes.txt")

	records, err := w.RetrieveFiles(context.Background(), file, 3, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "notes.txt", records[0].RelativePath)
	assert.Equal(t, 1, records[0].Depth)

	records, err = w.RetrieveFiles(context.Background(), file, 3, "py")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRetrieveDepthZero(t *testing.T) {
	root := exampleTree(t)
	w := newTestWalker(t)

	records, err := w.RetrieveFiles(context.Background(), root, 0, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsDir)
	assert.Equal(t, filepath.Base(root), records[0].Name)
}

func TestRetrieveMissingRoot(t *testing.T) {
	w := newTestWalker(t)

	records, err := w.RetrieveFiles(context.Background(), filepath.Join(t.TempDir(), "nope"), 1, "")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, records)
}

func TestRetrieveEmptyDirectory(t *testing.T) {
	w := newTestWalker(t)

	listing, err := w.Retrieve(context.Background(), TraversalRequest{Root: t.TempDir(), Depth: 3})
	require.NoError(t, err)
	assert.NotNil(t, listing.Records)
	assert.Empty(t, listing.Records)
	assert.Equal(t, 1, listing.Stats.Directories)
}

func TestRetrieveStats(t *testing.T) {
	root := exampleTree(t)
	w := newTestWalker(t)

	listing, err := w.Retrieve(context.Background(), TraversalRequest{Root: root, Depth: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Stats.Records)
	assert.Equal(t, 0, listing.Stats.Errors)
	assert.Equal(t, 2, listing.Stats.Directories)
}

func TestRetrieveSurvivesUnreadableSibling(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"locked/secret.txt": "s",
		"open/a.txt":        "a",
		"open/b.txt":        "b",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	w := newTestWalker(t)
	listing, err := w.Retrieve(context.Background(), TraversalRequest{Root: root, Depth: 2})
	require.NoError(t, err)

	rels := relPaths(listing.Records)
	assert.Contains(t, rels, "open/a.txt")
	assert.Contains(t, rels, "open/b.txt")
	assert.NotContains(t, rels, "locked/secret.txt")
	assert.Positive(t, listing.Stats.Errors)
}

func TestRetrieveCancelled(t *testing.T) {
	root := exampleTree(t)
	w := newTestWalker(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// cancellation is best effort; it must never panic or hang
	_, _ = w.RetrieveFiles(ctx, root, 2, "")
}

func TestNewWalkerInvalidPattern(t *testing.T) {
	cfg := DefaultWalkerConfig()
	cfg.IgnorePatterns = []string{"[broken"}

	_, err := NewWalker(cfg, nil)
	assert.Error(t, err)
}

func TestWalkerAccessors(t *testing.T) {
	w := newTestWalker(t)
	assert.Equal(t, DefaultPoolSize, w.Pool().Size())
	assert.NotNil(t, w.Resolver().Cache())
	assert.Len(t, w.Ignore().Patterns(), len(DefaultIgnorePatterns))
}

func TestRetrieveKeepsPercentNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a%20b.txt":   "hello",
		"d%41ta/x.py": "x",
	})
	w := newTestWalker(t)

	listing, err := w.Retrieve(context.Background(), TraversalRequest{Root: root, Depth: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Stats.Errors)
	require.Equal(t, []string{"a%20b.txt", "d%41ta", "d%41ta/x.py"}, relPaths(listing.Records))

	file := listing.Records[0]
	assert.Equal(t, "a%20b.txt", file.Name)
	assert.Equal(t, filepath.Join(root, "a%20b.txt"), file.Path)
	require.NotNil(t, file.Size)
	assert.Equal(t, int64(5), *file.Size)

	dir := listing.Records[1]
	assert.True(t, dir.IsDir)
	require.NotNil(t, dir.ChildrenCount)
	assert.Equal(t, 1, *dir.ChildrenCount)
}

// walkerWithCounter builds a walker whose resolver counts directory entries
// with count.
func walkerWithCounter(t *testing.T, count func(string) (int, error)) *Walker {
	t.Helper()
	ignore, err := CompileIgnore(DefaultIgnorePatterns, nil)
	require.NoError(t, err)
	resolver := newTestResolver(100)
	resolver.count = count
	return NewWalkerWith(NewPool(DefaultPoolSize), resolver, ignore, nil)
}

func TestRetrieveUncountableDirectoryStaysDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"locked/inner.py": "x",
		"notes.txt":       "n",
	})
	w := walkerWithCounter(t, func(dir string) (int, error) {
		if filepath.Base(dir) == "locked" {
			return 0, os.ErrPermission
		}
		return countEntries(dir)
	})

	tests := []struct {
		name       string
		extensions string
		want       []string
	}{
		{"no filter", "", []string{"locked", "locked/inner.py", "notes.txt"}},
		{"extension filter keeps the directory", "py", []string{"locked", "locked/inner.py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := w.Retrieve(context.Background(), TraversalRequest{Root: root, Depth: 2, Extensions: tt.extensions})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(listing.Records))
			assert.Positive(t, listing.Stats.Errors)

			locked := listing.Records[0]
			assert.True(t, locked.IsDir)
			assert.Nil(t, locked.ChildrenCount)
			assert.Nil(t, locked.Size)
		})
	}
}
