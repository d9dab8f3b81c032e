// Package main is the entry point for the local file explorer backend.
//
// The server exposes a local directory tree to the explorer UI:
//
//	Frontend (React) → Explorer (HTTP, :8000) → local filesystem
//
// It provides:
//   - Depth-bounded listings with extension filtering and ignore rules
//   - File content as UTF-8 text
//   - Name search
//   - Rename, move, create-folder and delete
//   - Opening paths in an editor, file manager or jupyter
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Start the server
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server --dev
//
//	# List or search from the terminal
//	./server ls ~/project --depth 2
//	./server search ~/project notes
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
