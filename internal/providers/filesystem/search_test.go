package filesystem

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Report.md":              "r",
		"docs/report-2024.txt":   "r",
		"docs/notes.txt":         "n",
		"src/report.py":          "r",
		".git/report":            "ignored",
		"node_modules/report.js": "ignored",
		"reports/":               "",
	})
	return root
}

func TestSearchMatchesNamesCaseInsensitive(t *testing.T) {
	root := searchTree(t)
	w := newTestWalker(t)

	result, err := w.Search(context.Background(), SearchRequest{Root: root, Query: "REPORT"})
	require.NoError(t, err)
	assert.False(t, result.Truncated)
	assert.Equal(t, []string{"Report.md", "docs/report-2024.txt", "reports", "src/report.py"}, relPaths(result.Matches))
	assert.Equal(t, 4, result.Count)

	for _, m := range result.Matches {
		if m.RelativePath == "src/report.py" {
			assert.Equal(t, 2, m.Depth)
		}
	}
}

func TestSearchExtensionFilter(t *testing.T) {
	root := searchTree(t)
	w := newTestWalker(t)

	result, err := w.Search(context.Background(), SearchRequest{Root: root, Query: "report", Extensions: "py+md"})
	require.NoError(t, err)
	// directories are never filtered by extension
	assert.Equal(t, []string{"Report.md", "reports", "src/report.py"}, relPaths(result.Matches))
}

func TestSearchLimit(t *testing.T) {
	root := searchTree(t)
	w := newTestWalker(t)

	result, err := w.Search(context.Background(), SearchRequest{Root: root, Query: "report", Limit: 2})
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Len(t, result.Matches, 2)
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	root := searchTree(t)
	w := newTestWalker(t)

	result, err := w.Search(context.Background(), SearchRequest{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Count)
}

func TestSearchKeepsPercentNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"d%41ta/report%20final.md": "r"})
	w := newTestWalker(t)

	result, err := w.Search(context.Background(), SearchRequest{Root: root, Query: "%"})
	require.NoError(t, err)
	require.Equal(t, []string{"d%41ta", "d%41ta/report%20final.md"}, relPaths(result.Matches))
	assert.True(t, result.Matches[0].IsDir)
	assert.NotNil(t, result.Matches[1].Size)
}

func TestSearchInvalidRoot(t *testing.T) {
	root := searchTree(t)
	w := newTestWalker(t)

	_, err := w.Search(context.Background(), SearchRequest{Root: filepath.Join(root, "missing")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = w.Search(context.Background(), SearchRequest{Root: filepath.Join(root, "Report.md")})
	assert.ErrorIs(t, err, ErrInvalidPath)
}
