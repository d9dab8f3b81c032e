package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys ending in "/" are directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// exampleTree builds the tree used throughout the walker tests:
// .git/ (ignored), notes.txt (12 bytes), sub/foo.py
func exampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/HEAD":  "ref: main\n",
		"notes.txt":  "hello world\n",
		"sub/foo.py": "print(1)\n",
	})
	return root
}

func relPaths(records []FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.RelativePath
	}
	return out
}

func newTestWalker(t *testing.T) *Walker {
	t.Helper()
	w, err := NewWalker(DefaultWalkerConfig(), nil)
	require.NoError(t, err)
	return w
}
