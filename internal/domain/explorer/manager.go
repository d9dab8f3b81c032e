package explorer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/cache"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/FileExplorer/internal/providers/filesystem"
)

// ErrInvalidRequest marks malformed caller input such as a negative depth.
var ErrInvalidRequest = errors.New("invalid request")

// Config assembles everything the manager builds
type Config struct {
	Walker             filesystem.WalkerConfig
	Launcher           filesystem.LauncherConfig
	Runner             filesystem.CommandRunner
	CacheResponses     bool
	ResponseTTL        time.Duration
	ResponseCacheSize  int
	InvalidateMetadata bool
	ContentLimit       int64
	MaxDepth           int
	SearchLimit        int
}

// DefaultConfig returns the standard manager configuration
func DefaultConfig() Config {
	return Config{
		Walker:             filesystem.DefaultWalkerConfig(),
		Launcher:           filesystem.DefaultLauncherConfig(),
		CacheResponses:     true,
		ResponseTTL:        cache.DefaultTTL,
		ResponseCacheSize:  cache.DefaultSize,
		InvalidateMetadata: true,
		ContentLimit:       filesystem.DefaultContentLimit,
		MaxDepth:           32,
		SearchLimit:        filesystem.DefaultSearchLimit,
	}
}

// ConfigFrom maps application configuration onto the manager
func ConfigFrom(cfg *config.Config) Config {
	out := DefaultConfig()
	out.Walker.Workers = cfg.Traversal.Workers
	out.Walker.CacheSize = cfg.Traversal.MetadataCacheSize
	out.Walker.NormalizerMemo = cfg.Traversal.NormalizerMemo
	out.MaxDepth = cfg.Traversal.MaxDepth
	out.SearchLimit = cfg.Traversal.SearchLimit
	out.CacheResponses = cfg.Cache.Enabled
	out.ResponseTTL = cfg.Cache.TTL
	out.ResponseCacheSize = cfg.Cache.Size
	out.InvalidateMetadata = cfg.Cache.InvalidateMetadata
	out.ContentLimit = cfg.Content.MaxBytes
	out.Launcher = filesystem.LauncherConfig{
		Editor:   cfg.Launcher.EditorCommand,
		Notebook: cfg.Launcher.NotebookCommand,
		Folder:   cfg.Launcher.FolderCommand,
	}
	return out
}

// Manager serves listings, content and mutations
type Manager struct {
	cfg       Config
	walker    *filesystem.Walker
	ops       *filesystem.Operations
	launcher  *filesystem.Launcher
	responses *cache.ResponseCache
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// NewManager builds the engine and caches from cfg
func NewManager(cfg Config, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	walker, err := filesystem.NewWalker(cfg.Walker, logger.Named("walker"))
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:    cfg,
		walker: walker,
		logger: logger,
	}
	if cfg.CacheResponses {
		m.responses = cache.NewResponseCache(cfg.ResponseTTL, cfg.ResponseCacheSize)
	}

	normalizer := walker.Resolver().Normalizer()
	m.ops = filesystem.NewOperations(normalizer, m, logger.Named("operations"))
	m.launcher = filesystem.NewLauncher(cfg.Launcher, cfg.Runner, normalizer, logger.Named("launcher"))
	return m, nil
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	if metrics == nil {
		return m
	}
	metadata := m.walker.Resolver().Cache()
	metrics.RegisterCache("metadata", func() (int, uint64, uint64, uint64) {
		s := metadata.Stats()
		return s.Entries, s.Hits, s.Misses, s.Evictions
	})
	if m.responses != nil {
		metrics.RegisterCache("response", m.responses.Stats)
	}
	return m
}

// Walker returns the traversal engine
func (m *Manager) Walker() *filesystem.Walker {
	return m.walker
}

func (m *Manager) normalize(p string) string {
	return m.walker.Resolver().Normalizer().Normalize(p)
}

func (m *Manager) checkDepth(depth int) (int, error) {
	if depth < 0 {
		return 0, fmt.Errorf("%w: depth must not be negative, got %d", ErrInvalidRequest, depth)
	}
	if m.cfg.MaxDepth > 0 && depth > m.cfg.MaxDepth {
		return m.cfg.MaxDepth, nil
	}
	return depth, nil
}

// List returns the encoded JSON array of records under root. cached reports
// whether the body came from the response cache.
func (m *Manager) List(ctx context.Context, root string, depth int, extensions string) (body []byte, cached bool, err error) {
	depth, err = m.checkDepth(depth)
	if err != nil {
		return nil, false, err
	}
	root = m.normalize(root)
	key := cache.Key{Path: root, Depth: depth, Extensions: extensions}

	if m.responses != nil {
		if body, ok := m.responses.Get(key); ok {
			m.recordLookup(true)
			return body, true, nil
		}
		m.recordLookup(false)
	}

	records, err := m.Records(ctx, filesystem.TraversalRequest{Root: root, Depth: depth, Extensions: extensions})
	if err != nil {
		return nil, false, err
	}

	if m.responses != nil {
		body, err = m.responses.Store(key, records)
	} else {
		body, err = sonic.Marshal(records)
	}
	if err != nil {
		return nil, false, err
	}
	return body, false, nil
}

// Records runs an uncached traversal and records its metrics
func (m *Manager) Records(ctx context.Context, req filesystem.TraversalRequest) ([]filesystem.FileRecord, error) {
	depth, err := m.checkDepth(req.Depth)
	if err != nil {
		return nil, err
	}
	req.Depth = depth

	listing, err := m.walker.Retrieve(ctx, req)
	if m.metrics != nil {
		if err != nil {
			m.metrics.RecordTraversal("list", 0, 0, 0, err)
		} else {
			m.metrics.RecordTraversal("list", listing.Stats.Duration, listing.Stats.Records, listing.Stats.Errors, nil)
		}
	}
	if err != nil {
		return nil, err
	}
	return listing.Records, nil
}

func (m *Manager) recordLookup(hit bool) {
	if m.metrics != nil {
		m.metrics.RecordCacheLookup(hit)
	}
}

// View is the result of viewing a path: a listing for directories and
// content for files.
type View struct {
	Listing []byte
	Cached  bool
	Content *filesystem.FileContent
}

// IsDir reports whether the view is a directory listing
func (v *View) IsDir() bool {
	return v.Content == nil
}

// View lists a directory or reads a file as text
func (m *Manager) View(ctx context.Context, p string, depth int, extensions string) (*View, error) {
	p = m.normalize(p)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", filesystem.ErrNotFound, p)
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}

	if info.IsDir() {
		body, cached, err := m.List(ctx, p, depth, extensions)
		if err != nil {
			return nil, err
		}
		return &View{Listing: body, Cached: cached}, nil
	}

	content, err := filesystem.ReadText(p, m.cfg.ContentLimit)
	if err != nil {
		return nil, err
	}
	return &View{Content: content}, nil
}

// Search finds items by name below root
func (m *Manager) Search(ctx context.Context, req filesystem.SearchRequest) (*filesystem.SearchResult, error) {
	if req.Limit <= 0 || (m.cfg.SearchLimit > 0 && req.Limit > m.cfg.SearchLimit) {
		req.Limit = m.cfg.SearchLimit
	}

	start := time.Now()
	result, err := m.walker.Search(ctx, req)
	if m.metrics != nil {
		count := 0
		if result != nil {
			count = result.Count
		}
		m.metrics.RecordTraversal("search", time.Since(start), count, 0, err)
	}
	return result, err
}

// Rename renames a file or directory
func (m *Manager) Rename(oldPath, newPath string) error {
	timer := monitoring.NewTimer(m.metrics, "rename")
	err := m.ops.Rename(oldPath, newPath)
	timer.Stop(err)
	return err
}

// Move moves an item and returns its final path
func (m *Manager) Move(src, destination string) (string, error) {
	timer := monitoring.NewTimer(m.metrics, "move")
	final, err := m.ops.Move(src, destination)
	timer.Stop(err)
	return final, err
}

// CreateFolder creates a directory and its parents
func (m *Manager) CreateFolder(p string) error {
	timer := monitoring.NewTimer(m.metrics, "create_folder")
	err := m.ops.CreateFolder(p)
	timer.Stop(err)
	return err
}

// Delete removes every listed path
func (m *Manager) Delete(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: no paths given", ErrInvalidRequest)
	}
	timer := monitoring.NewTimer(m.metrics, "delete")
	err := m.ops.Delete(paths)
	timer.Stop(err)
	return err
}

// OpenInEditor opens a path in the configured editor
func (m *Manager) OpenInEditor(p string) error {
	timer := monitoring.NewTimer(m.metrics, "open_editor")
	err := m.launcher.OpenInEditor(p)
	timer.Stop(err)
	return err
}

// OpenFolder opens a directory in the file manager
func (m *Manager) OpenFolder(p string) error {
	timer := monitoring.NewTimer(m.metrics, "open_folder")
	err := m.launcher.OpenFolder(p)
	timer.Stop(err)
	return err
}

// OpenNotebook opens a notebook with jupyter
func (m *Manager) OpenNotebook(p string) error {
	timer := monitoring.NewTimer(m.metrics, "open_notebook")
	err := m.launcher.OpenNotebook(p)
	timer.Stop(err)
	return err
}

// Invalidate drops cached state for dir. It is the hook every mutation calls.
func (m *Manager) Invalidate(dir string) {
	dropped := 0
	if m.responses != nil {
		dropped = m.responses.InvalidatePrefix(dir)
	}
	if m.metrics != nil {
		m.metrics.RecordInvalidation(dropped)
	}

	metadata := 0
	if m.cfg.InvalidateMetadata {
		metadata = m.walker.Resolver().Cache().Invalidate(dir)
	}

	m.logger.Debug("cache invalidated",
		zap.String("dir", dir),
		zap.Int("responses", dropped),
		zap.Int("metadata", metadata),
	)
}

// ClearCaches empties the response and metadata caches
func (m *Manager) ClearCaches() {
	if m.responses != nil {
		m.responses.Clear()
	}
	m.walker.Resolver().Cache().Clear()
	m.logger.Info("caches cleared")
}

// Stats describes the manager's caches and pool
type Stats struct {
	Workers          int                   `json:"workers"`
	MetadataCache    filesystem.CacheStats `json:"metadata_cache"`
	ResponseEntries  int                   `json:"response_cache_entries"`
	ResponseTTL      string                `json:"response_cache_ttl"`
	IgnorePatterns   int                   `json:"ignore_patterns"`
	InvalidationMeta bool                  `json:"invalidate_metadata"`
}

// Stats returns a snapshot for the health endpoint
func (m *Manager) Stats() Stats {
	s := Stats{
		Workers:          m.walker.Pool().Size(),
		MetadataCache:    m.walker.Resolver().Cache().Stats(),
		IgnorePatterns:   len(m.walker.Ignore().Patterns()),
		InvalidationMeta: m.cfg.InvalidateMetadata,
	}
	if m.responses != nil {
		s.ResponseEntries = m.responses.Len()
		s.ResponseTTL = m.responses.TTL().String()
	}
	return s
}
