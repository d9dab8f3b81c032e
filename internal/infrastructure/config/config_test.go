package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.True(t, cfg.Server.Gzip)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)

	// Rate limit config
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.RateLimit.Global)

	// Traversal config
	assert.Equal(t, 4, cfg.Traversal.Workers)
	assert.Equal(t, 1000, cfg.Traversal.MetadataCacheSize)

	// Cache config
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.InvalidateMetadata)

	// CORS config
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)

	// Launcher config
	assert.Equal(t, "code", cfg.Launcher.EditorCommand)
	assert.Equal(t, []string{"jupyter", "notebook"}, cfg.Launcher.NotebookCommand)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                "9000",
		"HOST":                "127.0.0.1",
		"LOG_LEVEL":           "debug",
		"LOG_DEV":             "true",
		"RATE_LIMIT_RPS":      "500",
		"RATE_LIMIT_ENABLED":  "false",
		"RATE_LIMIT_GLOBAL":   "true",
		"READ_HEADER_TIMEOUT": "2s",
		"CORS_ORIGINS":        "http://localhost:3000,http://localhost:5173",
		"TRAVERSAL_WORKERS":   "8",
		"METADATA_CACHE_SIZE": "5000",
		"RESPONSE_CACHE_TTL":  "250ms",
		"INVALIDATE_METADATA": "false",
		"NOTEBOOK_CMD":        "jupyter,lab",
		"FOLDER_CMD":          "nautilus",
		"CONTENT_MAX_BYTES":   "1024",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.RateLimit.Global)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 8, cfg.Traversal.Workers)
	assert.Equal(t, 5000, cfg.Traversal.MetadataCacheSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.InvalidateMetadata)
	assert.Equal(t, []string{"jupyter", "lab"}, cfg.Launcher.NotebookCommand)
	assert.Equal(t, "nautilus", cfg.Launcher.FolderCommand)
	assert.Equal(t, int64(1024), cfg.Content.MaxBytes)

	// untouched values keep their defaults
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.Equal(t, 32, cfg.Traversal.MaxDepth)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero workers", "TRAVERSAL_WORKERS", "0"},
		{"zero metadata cache", "METADATA_CACHE_SIZE", "0"},
		{"negative depth cap", "MAX_DEPTH", "-1"},
		{"negative ttl", "RESPONSE_CACHE_TTL", "-5s"},
		{"negative header timeout", "READ_HEADER_TIMEOUT", "-1s"},
		{"unparsable", "TRAVERSAL_WORKERS", "four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			// LoadOrDefault falls back instead of failing
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{
			name:      "default values",
			wantLevel: "info",
			wantDev:   false,
		},
		{
			name:      "debug level",
			level:     "debug",
			wantLevel: "debug",
			wantDev:   false,
		},
		{
			name:      "development mode",
			dev:       "true",
			wantLevel: "info",
			wantDev:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.level != "" {
				t.Setenv("LOG_LEVEL", tt.level)
			}
			if tt.dev != "" {
				t.Setenv("LOG_DEV", tt.dev)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}
