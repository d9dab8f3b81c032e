package filesystem

import (
	"errors"
	"time"
)

// FileRecord is the unit returned by a traversal.
// Exactly one of Size and ChildrenCount is set, chosen by IsDir; both are nil
// when resolution failed.
type FileRecord struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	RelativePath  string `json:"relative_path"`
	Depth         int    `json:"depth"`
	IsDir         bool   `json:"is_dir"`
	Size          *int64 `json:"size,omitempty"`
	ChildrenCount *int   `json:"children_count,omitempty"`
}

// TraversalRequest describes one listing call.
type TraversalRequest struct {
	Root       string
	Depth      int
	Extensions string
}

// TraversalStats summarizes a finished traversal.
type TraversalStats struct {
	Records     int
	Errors      int
	Directories int
	Duration    time.Duration
}

// Listing is the result of a traversal.
type Listing struct {
	Records []FileRecord
	Stats   TraversalStats
}

// ErrorKind classifies errors recovered inside the engine.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindTransient covers permission denied and vanished-between-list-and-stat.
	KindTransient
	// KindStructural covers paths outside the traversal root.
	KindStructural
	// KindDecode covers malformed percent-encoding.
	KindDecode
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransient:
		return "transient"
	case KindStructural:
		return "structural"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Caller-facing errors.
var (
	ErrNotFound    = errors.New("path not found")
	ErrExists      = errors.New("destination already exists")
	ErrNotText     = errors.New("file is not readable as text")
	ErrTooLarge    = errors.New("file exceeds content size limit")
	ErrIsDirectory = errors.New("path is a directory")
	ErrInvalidPath = errors.New("invalid path")
)

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
