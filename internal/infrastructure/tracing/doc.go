/*
Package tracing provides lightweight request tracing for debugging.

Every HTTP request gets a span. An incoming X-Trace-ID header continues an
existing trace; otherwise a new time-sortable trace ID is issued. Span IDs
are UUIDs. Both identifiers are echoed
in the response headers and finished spans are written to the structured log
by a background collector.

# Usage

	tracer := tracing.New("explorer", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// inside a handler
	log := tracing.Logger(c.Request.Context(), logger)
*/
package tracing
