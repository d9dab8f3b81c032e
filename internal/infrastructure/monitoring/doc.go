/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the explorer
service, tracking HTTP requests, traversals, caches and filesystem mutations.

# Features

- HTTP request metrics (latency, throughput, size) labelled by route
- Traversal metrics (duration, record count, recovered per-node errors)
- Response cache lookups and invalidations
- Live metadata cache counters via RegisterCache
- Mutation and launcher outcomes

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(monitoring.Handler(reg)))

	timer := monitoring.NewTimer(metrics, "rename")
	err := ops.Rename(oldPath, newPath)
	timer.Stop(err)
*/
package monitoring
