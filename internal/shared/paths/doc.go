// Package paths provides path relationship helpers shared by the traversal
// engine and the response cache.
//
// All helpers operate on cleaned host paths and never touch the filesystem.
package paths
