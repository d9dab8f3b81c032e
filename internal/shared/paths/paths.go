package paths

import (
	"path/filepath"
	"strings"
)

// Rel returns target relative to base and whether target lies at or beneath base.
func Rel(base, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// IsWithin reports whether p equals dir or lies beneath it
func IsWithin(p, dir string) bool {
	_, ok := Rel(dir, p)
	return ok
}

// Related reports whether either path contains the other. A cached listing
// of an ancestor and a cached listing of a descendant are both affected by a
// change at p.
func Related(a, b string) bool {
	return IsWithin(a, b) || IsWithin(b, a)
}

// Depth returns the number of path components in a relative path
func Depth(rel string) int {
	rel = filepath.Clean(rel)
	if rel == "." || rel == "" {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
