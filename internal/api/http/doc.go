// Package http exposes the explorer over HTTP with gin.
//
// Listing responses are pre-encoded JSON arrays of file records, served
// from the response cache when fresh. Every error is returned as
// {"detail": message} with a status derived from the error kind.
package http
