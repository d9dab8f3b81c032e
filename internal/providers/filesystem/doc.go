// Package filesystem implements the traversal engine behind the explorer API.
//
// This package is organized into specialized modules:
//   - ignore: Fixed ignore patterns compiled once (subtree, directory-name, file-glob)
//   - paths: Path normalization with a host-selected POSIX or Windows strategy
//   - metadata: Cached per-item metadata resolution (FileRecord)
//   - filter: Extension filter parsed from "+"-joined specs
//   - walker: Depth-bounded concurrent traversal backed by a fixed worker pool
//   - search: Recursive name search over fastwalk
//   - content: Text content retrieval with MIME and charset detection
//   - operations: Rename, move, create-folder and delete with cache invalidation
//   - launcher: Opening paths in external tools
//
// Failure policy:
//   - Errors inside a traversal step degrade that node to an empty contribution
//   - Only whole-call conditions (missing root, unreadable text) reach the caller
//
// Example Usage:
//
//	walker, err := filesystem.NewWalker(filesystem.DefaultWalkerConfig(), logger)
//	if err != nil {
//		return err
//	}
//	records, err := walker.RetrieveFiles(ctx, "/home/me/project", 2, "py+md")
package filesystem
