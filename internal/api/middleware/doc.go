// Package middleware provides HTTP middleware for the explorer API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing restricted to the explorer UI origins
//   - RateLimit: Per-IP token bucket rate limiting with idle client cleanup
//   - GlobalRateLimit: One token bucket shared by all clients
//
// Rejected requests receive 429 with a {"detail": ...} body, matching the
// error shape of every other endpoint.
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.CORSFromOrigins(cfg.CORS.AllowedOrigins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
