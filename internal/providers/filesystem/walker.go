package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// WalkerConfig configures a Walker
type WalkerConfig struct {
	Workers        int
	CacheSize      int
	NormalizerMemo int
	IgnorePatterns []string
	Style          PathStyle
}

// DefaultWalkerConfig returns the standard engine configuration
func DefaultWalkerConfig() WalkerConfig {
	return WalkerConfig{
		Workers:        DefaultPoolSize,
		CacheSize:      DefaultMetadataCacheSize,
		NormalizerMemo: DefaultNormalizerMemo,
		IgnorePatterns: DefaultIgnorePatterns,
		Style:          HostStyle(),
	}
}

// Walker runs depth-bounded, filtered, concurrent traversals. Every call is
// independent; the metadata cache is the only state shared between calls.
type Walker struct {
	pool     *Pool
	resolver *Resolver
	ignore   *IgnoreMatcher
	logger   *zap.Logger
}

// NewWalker builds a walker and the resources it owns from cfg
func NewWalker(cfg WalkerConfig, logger *zap.Logger) (*Walker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	patterns := cfg.IgnorePatterns
	if patterns == nil {
		patterns = DefaultIgnorePatterns
	}
	ignore, err := CompileIgnore(patterns, logger.Named("ignore"))
	if err != nil {
		return nil, fmt.Errorf("compile ignore patterns: %w", err)
	}

	normalizer := NewNormalizer(cfg.Style, logger.Named("paths"), cfg.NormalizerMemo)
	resolver := NewResolver(normalizer, NewMetadataCache(cfg.CacheSize), logger.Named("metadata"))
	return NewWalkerWith(NewPool(cfg.Workers), resolver, ignore, logger), nil
}

// NewWalkerWith assembles a walker from explicitly constructed parts
func NewWalkerWith(pool *Pool, resolver *Resolver, ignore *IgnoreMatcher, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		pool:     pool,
		resolver: resolver,
		ignore:   ignore,
		logger:   logger,
	}
}

// Pool returns the walker's worker pool
func (w *Walker) Pool() *Pool { return w.pool }

// Resolver returns the walker's metadata resolver
func (w *Walker) Resolver() *Resolver { return w.resolver }

// Ignore returns the walker's ignore matcher
func (w *Walker) Ignore() *IgnoreMatcher { return w.ignore }

// RetrieveFiles is the listing entry point used by the request layer.
func (w *Walker) RetrieveFiles(ctx context.Context, root string, depth int, extensions string) ([]FileRecord, error) {
	listing, err := w.Retrieve(ctx, TraversalRequest{Root: root, Depth: depth, Extensions: extensions})
	if err != nil {
		return nil, err
	}
	return listing.Records, nil
}

// nodeResult is one node's contribution: its records plus how many
// sub-errors were swallowed while producing them.
type nodeResult struct {
	records []FileRecord
	errs    int
	dirs    int
}

func (n *nodeResult) merge(o nodeResult) {
	n.records = append(n.records, o.records...)
	n.errs += o.errs
	n.dirs += o.dirs
}

type walkState struct {
	anchor   string
	maxDepth int
	filter   ExtensionFilter
}

// Retrieve lists req.Root down to req.Depth. Only a missing root is
// reported as an error; failures below the root degrade to partial results.
func (w *Walker) Retrieve(ctx context.Context, req TraversalRequest) (*Listing, error) {
	start := time.Now()
	root := w.resolver.Normalizer().Normalize(req.Root)
	filter := ParseExtensions(req.Extensions)

	var (
		info    os.FileInfo
		statErr error
	)
	if err := w.pool.Do(ctx, func() { info, statErr = os.Stat(root) }); err != nil {
		return nil, err
	}
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}
		w.logger.Warn("root not accessible, returning empty listing",
			zap.String("root", root),
			zap.Error(statErr),
		)
		return &Listing{Records: []FileRecord{}, Stats: TraversalStats{Errors: 1, Duration: time.Since(start)}}, nil
	}

	var result nodeResult
	if !info.IsDir() || req.Depth <= 0 {
		result = w.single(ctx, root, filter)
	} else {
		state := walkState{anchor: root, maxDepth: req.Depth, filter: filter}
		result = w.walkDir(ctx, root, 1, state)
	}

	records := result.records
	if records == nil {
		records = []FileRecord{}
	}
	stats := TraversalStats{
		Records:     len(records),
		Errors:      result.errs,
		Directories: result.dirs,
		Duration:    time.Since(start),
	}

	w.logger.Debug("traversal finished",
		zap.String("root", root),
		zap.Int("depth", req.Depth),
		zap.String("extensions", req.Extensions),
		zap.Int("records", stats.Records),
		zap.Int("errors", stats.Errors),
		zap.Duration("duration", stats.Duration),
	)
	return &Listing{Records: records, Stats: stats}, nil
}

// single resolves just the root item, anchored at its parent.
func (w *Walker) single(ctx context.Context, root string, filter ExtensionFilter) nodeResult {
	var res Resolution
	if err := w.pool.Do(ctx, func() { res = w.resolver.ResolveCanonical(root, filepath.Dir(root), 1) }); err != nil {
		return nodeResult{errs: 1}
	}

	out := nodeResult{}
	if res.Err != nil {
		out.errs++
	}
	if !filter.Allows(res.Record.Name, res.Record.IsDir) {
		return out
	}
	out.records = []FileRecord{res.Record}
	return out
}

// walkDir lists dir and processes its surviving children concurrently.
// Contributions are gathered in listing order.
func (w *Walker) walkDir(ctx context.Context, dir string, depth int, state walkState) nodeResult {
	if depth > state.maxDepth {
		return nodeResult{}
	}

	var (
		entries []os.DirEntry
		listErr error
	)
	if err := w.pool.Do(ctx, func() { entries, listErr = os.ReadDir(dir) }); err != nil {
		listErr = err
	}
	if listErr != nil {
		w.logger.Warn("listing failed, skipping directory",
			zap.String("dir", dir),
			zap.Bool("transient", IsTransient(listErr)),
			zap.Error(listErr),
		)
		// ReadDir returns what it read before failing
		if len(entries) == 0 {
			return nodeResult{errs: 1}
		}
	}

	children := make([]os.DirEntry, 0, len(entries))
	for _, e := range entries {
		if w.ignore.IsIgnored(filepath.Join(dir, e.Name()), state.anchor) {
			continue
		}
		children = append(children, e)
	}

	results := make([]nodeResult, len(children))
	var wg sync.WaitGroup
	for i, e := range children {
		wg.Add(1)
		go func(i int, e os.DirEntry) {
			defer wg.Done()
			results[i] = w.walkItem(ctx, filepath.Join(dir, e.Name()), e, depth, state)
		}(i, e)
	}
	wg.Wait()

	out := nodeResult{dirs: 1}
	if listErr != nil {
		out.errs++
	}
	for _, r := range results {
		out.merge(r)
	}
	return out
}

// walkItem resolves one child and, for directories below the depth bound,
// appends its subtree after its own record.
func (w *Walker) walkItem(ctx context.Context, p string, entry os.DirEntry, depth int, state walkState) nodeResult {
	regular := !entry.IsDir() && entry.Type()&fs.ModeSymlink == 0
	if regular && !state.filter.Allows(entry.Name(), false) {
		return nodeResult{}
	}

	var res Resolution
	if err := w.pool.Do(ctx, func() { res = w.resolver.ResolveCanonical(p, state.anchor, depth) }); err != nil {
		w.logger.Debug("resolution abandoned", zap.String("path", p), zap.Error(err))
		return nodeResult{errs: 1}
	}

	out := nodeResult{}
	if res.Err != nil {
		out.errs++
	}
	rec := res.Record
	// symlinks are only classified after the stat
	if !state.filter.Allows(rec.Name, rec.IsDir) {
		return out
	}
	out.records = append(out.records, rec)

	if rec.IsDir && depth < state.maxDepth {
		out.merge(w.walkDir(ctx, p, depth+1, state))
	}
	return out
}
