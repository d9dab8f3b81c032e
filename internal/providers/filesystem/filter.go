package filesystem

import (
	"sort"
	"strings"
	"unicode"
)

// ExtensionFilter is a file-only inclusion predicate. The zero value is the
// null filter and allows everything; an active filter with no extensions
// excludes every file.
type ExtensionFilter struct {
	active     bool
	extensions map[string]struct{}
	compound   []string
}

// ParseExtensions parses a "+"-joined spec such as "py+md+excalidraw.svg".
// Whitespace also separates tokens, since an unescaped "+" in a query string
// decodes to a space. An empty spec yields the null filter.
func ParseExtensions(spec string) ExtensionFilter {
	if spec == "" {
		return ExtensionFilter{}
	}

	f := ExtensionFilter{active: true, extensions: make(map[string]struct{})}
	for _, token := range strings.FieldsFunc(spec, isExtSeparator) {
		token = strings.TrimPrefix(strings.ToLower(token), ".")
		if token == "" {
			continue
		}
		if _, dup := f.extensions[token]; dup {
			continue
		}
		f.extensions[token] = struct{}{}
		if strings.Contains(token, ".") {
			f.compound = append(f.compound, "."+token)
		}
	}
	return f
}

func isExtSeparator(r rune) bool {
	return r == '+' || unicode.IsSpace(r)
}

// Active reports whether the filter restricts anything
func (f ExtensionFilter) Active() bool {
	return f.active
}

// Extensions returns the sorted extension set
func (f ExtensionFilter) Extensions() []string {
	out := make([]string, 0, len(f.extensions))
	for ext := range f.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Allows reports whether an item named name passes the filter. Directories
// always pass so traversal can reach matching files below them.
func (f ExtensionFilter) Allows(name string, isDir bool) bool {
	if isDir || !f.active {
		return true
	}
	if _, ok := f.extensions[Extension(name)]; ok {
		return true
	}
	lower := strings.ToLower(name)
	for _, suffix := range f.compound {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Extension returns the lower-cased text after the final dot, without the dot.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
