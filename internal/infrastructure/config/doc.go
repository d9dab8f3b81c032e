// Package config provides 12-factor configuration management for the file
// explorer backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown, gzip)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: Origins allowed to call the API
//   - Traversal: Worker pool size, metadata cache and depth cap
//   - Cache: Response cache TTL, size and invalidation
//   - Launcher: External editor, notebook and file manager commands
//   - Content: Maximum file size returned as text
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT, GZIP_ENABLED
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS
//   - TRAVERSAL_WORKERS, METADATA_CACHE_SIZE, NORMALIZER_MEMO_SIZE, MAX_DEPTH, SEARCH_LIMIT
//   - RESPONSE_CACHE_TTL, RESPONSE_CACHE_SIZE, RESPONSE_CACHE_ENABLED, INVALIDATE_METADATA
//   - EDITOR_CMD, NOTEBOOK_CMD, FOLDER_CMD
//   - CONTENT_MAX_BYTES
package config
