package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Traversal TraversalConfig
	Cache     CacheConfig
	Launcher  LauncherConfig
	Content   ContentConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string        `envconfig:"PORT" default:"8000"`
	Host              string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"5s"`
	Gzip              bool          `envconfig:"GZIP_ENABLED" default:"true"`
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	// Global shares one bucket across all clients instead of one per IP
	Global bool `envconfig:"RATE_LIMIT_GLOBAL" default:"false"`
}

// CORSConfig holds cross-origin settings for the explorer UI.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// TraversalConfig tunes the listing engine.
type TraversalConfig struct {
	Workers           int `envconfig:"TRAVERSAL_WORKERS" default:"4"`
	MetadataCacheSize int `envconfig:"METADATA_CACHE_SIZE" default:"1000"`
	NormalizerMemo    int `envconfig:"NORMALIZER_MEMO_SIZE" default:"4096"`
	MaxDepth          int `envconfig:"MAX_DEPTH" default:"32"`
	SearchLimit       int `envconfig:"SEARCH_LIMIT" default:"200"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTL     time.Duration `envconfig:"RESPONSE_CACHE_TTL" default:"5s"`
	Size    int           `envconfig:"RESPONSE_CACHE_SIZE" default:"256"`
	Enabled bool          `envconfig:"RESPONSE_CACHE_ENABLED" default:"true"`
	// InvalidateMetadata also drops engine metadata on mutation
	InvalidateMetadata bool `envconfig:"INVALIDATE_METADATA" default:"true"`
}

// LauncherConfig names the external tools. An empty FolderCommand picks the
// platform file manager.
type LauncherConfig struct {
	EditorCommand   string   `envconfig:"EDITOR_CMD" default:"code"`
	NotebookCommand []string `envconfig:"NOTEBOOK_CMD" default:"jupyter,notebook"`
	FolderCommand   string   `envconfig:"FOLDER_CMD"`
}

// ContentConfig limits file content responses.
type ContentConfig struct {
	MaxBytes int64 `envconfig:"CONTENT_MAX_BYTES" default:"10485760"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Traversal.Workers < 1 {
		return fmt.Errorf("invalid config: TRAVERSAL_WORKERS must be at least 1, got %d", c.Traversal.Workers)
	}
	if c.Traversal.MetadataCacheSize < 1 {
		return fmt.Errorf("invalid config: METADATA_CACHE_SIZE must be at least 1, got %d", c.Traversal.MetadataCacheSize)
	}
	if c.Traversal.MaxDepth < 0 {
		return fmt.Errorf("invalid config: MAX_DEPTH must not be negative, got %d", c.Traversal.MaxDepth)
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return fmt.Errorf("invalid config: READ_HEADER_TIMEOUT must not be negative, got %s", c.Server.ReadHeaderTimeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid config: RESPONSE_CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8000",
			Host:              "0.0.0.0",
			ShutdownTimeout:   10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			Gzip:              true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Traversal: TraversalConfig{
			Workers:           4,
			MetadataCacheSize: 1000,
			NormalizerMemo:    4096,
			MaxDepth:          32,
			SearchLimit:       200,
		},
		Cache: CacheConfig{
			TTL:                5 * time.Second,
			Size:               256,
			Enabled:            true,
			InvalidateMetadata: true,
		},
		Launcher: LauncherConfig{
			EditorCommand:   "code",
			NotebookCommand: []string{"jupyter", "notebook"},
		},
		Content: ContentConfig{
			MaxBytes: 10 << 20,
		},
	}
}
