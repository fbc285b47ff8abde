package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePython(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractSimplePattern(t *testing.T) {
	path := writePython(t, `import re

pattern = re.compile(r"test.*")
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 1)

	occ := occs[0]
	assert.Equal(t, "test.*", occ.Pattern)
	assert.Equal(t, path, occ.FilePath)
	assert.Equal(t, 3, occ.Line)
	assert.Equal(t, strings.Index(`pattern = re.compile(r"test.*")`, `r"`), occ.Column)
	assert.False(t, occ.Suppressed)
}

func TestExtractAllRecognizedFunctions(t *testing.T) {
	path := writePython(t, `import re

r1 = re.compile(r"p1")
r2 = re.search(r"p2", s)
r3 = re.match(r"p3", s)
r4 = re.fullmatch(r"p4", s)
r5 = re.split(r"p5", s)
r6 = re.findall(r"p6", s)
r7 = re.finditer(r"p7", s)
r8 = re.sub(r"p8", "x", s)
r9 = re.subn(r"p9", "x", s)
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 9)

	var patterns []string
	for _, occ := range occs {
		patterns = append(patterns, occ.Pattern)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}, patterns)
}

func TestExtractSkipsDynamicArguments(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"variable", "import re\nv = r\"x+\"\nre.compile(v)\n"},
		{"fstring", "import re\nre.compile(f\"{prefix}x+\")\n"},
		{"concatenation", "import re\nre.compile(r\"a\" + r\"b\")\n"},
		{"implicit concatenation", "import re\nre.compile(r\"a\" r\"b\")\n"},
		{"bytes literal", "import re\nre.compile(rb\"a+\")\n"},
		{"call result", "import re\nre.compile(build())\n"},
		{"keyword only", "import re\nre.compile(pattern=r\"a+\")\n"},
	}

	ext := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occs, err := ext.Extract(writePython(t, tt.source))
			require.NoError(t, err)
			assert.Empty(t, occs)
		})
	}
}

func TestExtractSkipsUnrecognizedCallees(t *testing.T) {
	path := writePython(t, `import re
import regex

regex.compile(r"(a+)+")
obj.re.compile(r"(a+)+")
compile(r"(a+)+")
re.escape(r"(a+)+")
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExtractIgnoresCommentedOutCalls(t *testing.T) {
	path := writePython(t, `import re

# re.compile(r"(a+)+")
live = re.compile(r"^ok$")
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, "^ok$", occs[0].Pattern)
}

func TestExtractSuppression(t *testing.T) {
	path := writePython(t, `import re

ignored = re.compile(r"(a|aa)+")  # redos-linter: ignore
checked = re.compile(r"(a+)+")
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 2)

	assert.Equal(t, "(a|aa)+", occs[0].Pattern)
	assert.True(t, occs[0].Suppressed)
	assert.Equal(t, "(a+)+", occs[1].Pattern)
	assert.False(t, occs[1].Suppressed)
}

func TestExtractEscapedStringLiterals(t *testing.T) {
	path := writePython(t, `import re

digits = re.compile("\\d+")
newline = re.compile("a\nb")
hexed = re.compile("\x41+")
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, `\d+`, occs[0].Pattern)
	assert.Equal(t, "a\nb", occs[1].Pattern)
	assert.Equal(t, "A+", occs[2].Pattern)
}

func TestExtractContextWindow(t *testing.T) {
	path := writePython(t, `line1 = 1
import re
target = re.compile(r"x+")
line4 = 4
line5 = 5
line6 = 6
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 1)

	// Target at line 3 of a 6-line file: window spans lines 1-5.
	window := occs[0].ContextLines
	require.Len(t, window, 5)
	assert.Equal(t, "      1: line1 = 1", window[0])
	assert.Equal(t, `>>>   3: target = re.compile(r"x+")`, window[2])
	assert.Equal(t, "      5: line5 = 5", window[4])
}

func TestExtractContextWindowClampedAtBounds(t *testing.T) {
	path := writePython(t, `p = __import__("re").compile
import re
x = re.compile(r"a+")
`)

	occs, err := New().Extract(path)
	require.NoError(t, err)
	require.Len(t, occs, 1)

	// Target at line 3 of a 3-line file: min(3, 5) - max(1, 1) + 1 = 3 lines.
	window := occs[0].ContextLines
	require.Len(t, window, 3)
	assert.True(t, strings.HasPrefix(window[2], ">>> "))
}

func TestExtractSyntaxError(t *testing.T) {
	path := writePython(t, "def broken(:\n    pass\n")

	_, err := New().Extract(path)
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, path, syntaxErr.Path)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(filepath.Join(t.TempDir(), "absent.py"))
	require.Error(t, err)

	var syntaxErr *SyntaxError
	assert.False(t, errors.As(err, &syntaxErr))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`\\d+`, `\d+`},
		{`\d+`, `\d+`}, // unknown escape keeps its backslash
		{`\x41`, "A"},
		{`é`, "é"},
		{`\0`, "\x00"},
		{`\'`, "'"},
		{`trailing\`, `trailing\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, unescape(tt.in), "input %q", tt.in)
	}
}
