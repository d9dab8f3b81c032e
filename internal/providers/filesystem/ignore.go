package filesystem

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// DefaultIgnorePatterns hides version control metadata, notebook checkpoints,
// bytecode, virtual environments, editor settings, logs, OS metadata files,
// dependency directories and temp files.
var DefaultIgnorePatterns = []string{
	".git/**",
	".ipynb_checkpoints/**",
	"*.pyc",
	"__pycache__/**",
	".env",
	".venv",
	"env/",
	"venv/",
	".vscode/",
	".idea/",
	"*.log",
	".DS_Store",
	"Thumbs.db",
	"node_modules/",
	"*.tmp",
}

// PatternKind identifies how an ignore pattern matches.
type PatternKind int

const (
	// PatternSubtree matches a literal prefix anywhere in the relative path ("name/**").
	PatternSubtree PatternKind = iota
	// PatternDirName matches a complete path segment ("name/").
	PatternDirName
	// PatternFileGlob matches a shell glob ("*.log").
	PatternFileGlob
)

// String returns the string representation of the kind
func (k PatternKind) String() string {
	switch k {
	case PatternSubtree:
		return "subtree"
	case PatternDirName:
		return "dir-name"
	case PatternFileGlob:
		return "file-glob"
	default:
		return "unknown"
	}
}

// IgnorePattern is one compiled ignore rule.
type IgnorePattern struct {
	Raw  string
	Kind PatternKind

	literal string
	globs   []string
}

// Match reports whether rel, a slash-separated path relative to the
// traversal root, is matched by the pattern.
func (p IgnorePattern) Match(rel string) bool {
	switch p.Kind {
	case PatternSubtree:
		return strings.Contains(rel, p.literal)
	case PatternDirName:
		for _, g := range p.globs {
			if ok, _ := doublestar.Match(g, rel); ok {
				return true
			}
		}
		return false
	default:
		if ok, _ := doublestar.Match(p.literal, rel); ok {
			return true
		}
		ok, _ := doublestar.Match(p.literal, path.Base(rel))
		return ok
	}
}

// IgnoreMatcher holds an ordered, immutable set of compiled patterns.
type IgnoreMatcher struct {
	patterns []IgnorePattern
	logger   *zap.Logger
}

// CompileIgnore compiles patterns in order
func CompileIgnore(patterns []string, logger *zap.Logger) (*IgnoreMatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	compiled := make([]IgnorePattern, 0, len(patterns))
	for _, raw := range patterns {
		p, err := compilePattern(raw)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, p)
	}
	return &IgnoreMatcher{patterns: compiled, logger: logger}, nil
}

// MustCompileIgnore is like CompileIgnore but panics on an invalid pattern.
func MustCompileIgnore(patterns []string, logger *zap.Logger) *IgnoreMatcher {
	m, err := CompileIgnore(patterns, logger)
	if err != nil {
		panic(err)
	}
	return m
}

func compilePattern(raw string) (IgnorePattern, error) {
	switch {
	case strings.HasSuffix(raw, "/**"):
		literal := strings.TrimSuffix(raw, "/**")
		if literal == "" {
			return IgnorePattern{}, fmt.Errorf("empty subtree pattern %q", raw)
		}
		return IgnorePattern{Raw: raw, Kind: PatternSubtree, literal: literal}, nil

	case strings.HasSuffix(raw, "/"):
		name := strings.TrimSuffix(raw, "/")
		if name == "" || strings.Contains(name, "/") {
			return IgnorePattern{}, fmt.Errorf("invalid directory pattern %q", raw)
		}
		quoted := escapeGlob(name)
		return IgnorePattern{
			Raw:  raw,
			Kind: PatternDirName,
			// "**/" also matches zero leading segments
			globs: []string{"**/" + quoted, "**/" + quoted + "/**"},
		}, nil

	default:
		if !doublestar.ValidatePattern(raw) {
			return IgnorePattern{}, fmt.Errorf("invalid glob pattern %q", raw)
		}
		return IgnorePattern{Raw: raw, Kind: PatternFileGlob, literal: raw}, nil
	}
}

func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Patterns returns a copy of the compiled patterns
func (m *IgnoreMatcher) Patterns() []IgnorePattern {
	out := make([]IgnorePattern, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// IsIgnored reports whether p should be hidden from a traversal anchored at
// root. Paths outside root are logged and treated as not ignored.
func (m *IgnoreMatcher) IsIgnored(p, root string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		m.logger.Warn("path outside traversal root, not ignoring",
			zap.String("path", p),
			zap.String("root", root),
			zap.Stringer("kind", KindStructural),
		)
		return false
	}
	return m.MatchRelative(filepath.ToSlash(rel))
}

// MatchRelative reports whether a slash-separated root-relative path is ignored.
func (m *IgnoreMatcher) MatchRelative(rel string) bool {
	for _, p := range m.patterns {
		if p.Match(rel) {
			return true
		}
	}
	return false
}
