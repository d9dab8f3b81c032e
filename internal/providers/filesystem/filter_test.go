package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		active bool
		want   []string
	}{
		{"empty is null filter", "", false, []string{}},
		{"single", "py", true, []string{"py"}},
		{"joined", "py+md+txt", true, []string{"md", "py", "txt"}},
		{"case and dots", "PY+.Md", true, []string{"md", "py"}},
		{"duplicates collapse", "py+py+PY", true, []string{"py"}},
		{"empty tokens dropped", "+py++", true, []string{"py"}},
		{"only separators", "+++", true, []string{}},
		{"decoded plus", "py txt", true, []string{"py", "txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseExtensions(tt.spec)
			assert.Equal(t, tt.active, f.Active())
			assert.Equal(t, tt.want, f.Extensions())
		})
	}
}

func TestExtensionFilterAllows(t *testing.T) {
	txt := ParseExtensions("txt")

	assert.True(t, txt.Allows("a.TXT", false))
	assert.False(t, txt.Allows("a.md", false))
	assert.False(t, txt.Allows("Makefile", false))
	assert.True(t, txt.Allows("docs", true))
	assert.True(t, txt.Allows("archive.md", true))
}

func TestNullFilterAllowsEverything(t *testing.T) {
	var f ExtensionFilter
	assert.True(t, f.Allows("anything.bin", false))
	assert.True(t, f.Allows("Makefile", false))
}

func TestActiveEmptyFilterExcludesFiles(t *testing.T) {
	f := ParseExtensions("+")
	assert.False(t, f.Allows("a.txt", false))
	assert.True(t, f.Allows("dir", true))
}

func TestCompoundExtension(t *testing.T) {
	f := ParseExtensions("excalidraw.svg")

	assert.True(t, f.Allows("diagram.excalidraw.svg", false))
	assert.True(t, f.Allows("Diagram.Excalidraw.SVG", false))
	assert.False(t, f.Allows("plain.svg", false))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "py", Extension("foo.py"))
	assert.Equal(t, "gz", Extension("a.tar.GZ"))
	assert.Equal(t, "", Extension("Makefile"))
	assert.Equal(t, "gitignore", Extension(".gitignore"))
}
