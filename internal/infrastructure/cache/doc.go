// Package cache holds short-lived encoded listing responses.
//
// Rapid repeated identical listing requests are served from memory for a few
// seconds. Entries are keyed by (path, depth, extensions), stored as
// pre-encoded JSON and dropped when a mutation touches a related directory.
package cache
