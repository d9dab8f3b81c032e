// Package server assembles the explorer HTTP service: logger, metrics,
// tracing, the explorer manager and the gin router with its middleware.
package server
