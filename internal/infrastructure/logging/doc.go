// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output on stderr
//
// Each engine component receives a named child logger, so records from the
// walker, metadata resolver and HTTP layer can be told apart.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	walker, err := filesystem.NewWalker(cfg, logger.Component("walker"))
package logging
