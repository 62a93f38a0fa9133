//go:build clang

package clangfe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffigen/comment"
	"ffigen/frontend"
)

const widgetHeader = `/* Widget docs. */
struct Widget { int x; };

#define WIDGET_MAX (1 << 4)

typedef struct { int y; } Anon;
`

func parseHeader(t *testing.T) (*Unit, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widget.h")
	require.NoError(t, os.WriteFile(path, []byte(widgetHeader), 0644))

	unit, err := Parse([]string{path}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { unit.Close() })
	return unit, path
}

// declared returns the top-level cursors of kind declared in file.
func declared(unit *Unit, file string, kind frontend.CursorKind) []frontend.Cursor {
	var out []frontend.Cursor
	for _, c := range unit.Cursor().Children() {
		if c.Kind() == kind && frontend.File(c.Location()) == file {
			out = append(out, c)
		}
	}
	return out
}

func spellings(tokens []frontend.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Spelling
	}
	return out
}

func TestParseDiagnostics(t *testing.T) {
	unit, _ := parseHeader(t)
	assert.Empty(t, unit.Diagnostics())
}

func TestGapCommentFromNullStart(t *testing.T) {
	unit, path := parseHeader(t)
	structs := declared(unit, path, frontend.CursorStructDecl)
	require.NotEmpty(t, structs)
	widget := structs[0]
	assert.Equal(t, "Widget", widget.Spelling())

	// the root location is null and moves to the start of the header
	gap := frontend.Range{Start: unit.Cursor().Location(), End: widget.Extent().Start}
	lines, tok := comment.Extract(unit, gap, true)
	require.NotNil(t, tok)
	assert.Equal(t, frontend.TokenComment, tok.Kind)
	assert.Contains(t, strings.Join(lines, " "), "Widget docs.")
}

func TestGapCommentFromOtherFile(t *testing.T) {
	unit, path := parseHeader(t)
	var include frontend.Cursor
	for _, c := range unit.Cursor().Children() {
		if c.Kind() == frontend.CursorInclusionDirective {
			include = c
			break
		}
	}
	require.NotNil(t, include, "the temporary source includes the header")
	assert.NotEqual(t, path, frontend.File(include.Location()))

	widget := declared(unit, path, frontend.CursorStructDecl)[0]
	tokens := unit.Tokenize(frontend.Range{Start: include.Extent().End, End: widget.Extent().Start})
	require.NotEmpty(t, tokens)
	assert.Equal(t, frontend.TokenComment, tokens[0].Kind)
	assert.Equal(t, "/* Widget docs. */", tokens[0].Spelling)
}

func TestMacroTokens(t *testing.T) {
	unit, path := parseHeader(t)
	var macro frontend.Cursor
	for _, c := range declared(unit, path, frontend.CursorMacroDefinition) {
		if c.Spelling() == "WIDGET_MAX" {
			macro = c
		}
	}
	require.NotNil(t, macro)

	tokens := unit.Tokenize(macro.Extent())
	assert.Equal(t, []string{"WIDGET_MAX", "(", "1", "<<", "4", ")"}, spellings(tokens))
	assert.Equal(t, frontend.TokenIdentifier, tokens[0].Kind)
	assert.Equal(t, frontend.TokenLiteral, tokens[2].Kind)
}

func TestAnonymousStructSpelling(t *testing.T) {
	unit, path := parseHeader(t)
	var anon frontend.Cursor
	for _, c := range declared(unit, path, frontend.CursorTypedefDecl) {
		if c.Spelling() == "Anon" {
			anon = c
		}
	}
	require.NotNil(t, anon)

	children := anon.Children()
	require.Len(t, children, 1)
	assert.Equal(t, frontend.CursorStructDecl, children[0].Kind())
	assert.Equal(t, "", children[0].Spelling())
	assert.Equal(t, frontend.TypeRecord, anon.Type().Canonical().Kind())
}
