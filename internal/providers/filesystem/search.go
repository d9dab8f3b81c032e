package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileExplorer/internal/shared/paths"
)

// DefaultSearchLimit caps search results when the caller does not.
const DefaultSearchLimit = 200

var errSearchLimit = errors.New("search limit reached")

// SearchRequest describes a recursive name search
type SearchRequest struct {
	Root       string
	Query      string
	Extensions string
	Limit      int
}

// SearchResult holds matches sorted by path
type SearchResult struct {
	Matches   []FileRecord `json:"matches"`
	Count     int          `json:"count"`
	Truncated bool         `json:"truncated"`
}

// Search walks the whole tree under req.Root with fastwalk and returns
// items whose name contains req.Query (case-insensitive). Ignored
// directories are pruned and the extension filter applies to files.
func (w *Walker) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	root := w.resolver.Normalizer().Normalize(req.Root)
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		return nil, fmt.Errorf("search root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: search root must be a directory", ErrInvalidPath)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query := strings.ToLower(req.Query)
	filter := ParseExtensions(req.Extensions)

	var (
		mu        sync.Mutex
		found     []string
		truncated bool
	)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			w.logger.Debug("search skipped entry", zap.String("path", p), zap.Error(err))
			return nil
		}
		if p == root {
			return nil
		}

		if w.ignore.IsIgnored(p, root) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.Contains(strings.ToLower(name), query) || !filter.Allows(name, d.IsDir()) {
			return nil
		}

		mu.Lock()
		defer mu.Unlock()
		if len(found) >= limit {
			truncated = true
			return errSearchLimit
		}
		found = append(found, p)
		return nil
	})
	if err != nil && !errors.Is(err, errSearchLimit) {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	sort.Strings(found)
	matches := make([]FileRecord, 0, len(found))
	for _, p := range found {
		rel, _ := paths.Rel(root, p)
		depth := paths.Depth(rel)

		var res Resolution
		if err := w.pool.Do(ctx, func() { res = w.resolver.ResolveCanonical(p, root, depth) }); err != nil {
			return nil, err
		}
		matches = append(matches, res.Record)
	}

	return &SearchResult{Matches: matches, Count: len(matches), Truncated: truncated}, nil
}
