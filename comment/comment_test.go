package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ffigen/frontend"
	"ffigen/frontend/frontendtest"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"line", "// hello world", []string{"hello world"}},
		{"doxygen line", "/// \\brief Opens it", []string{"Opens it"}},
		{"trailing member", "///< the size", []string{"the size"}},
		{"single block", "/* short */", []string{"short"}},
		{
			"javadoc block",
			"/**\n * Creates a widget.\n * See [docs].\n */",
			[]string{"", "Creates a widget.", "See (docs).", ""},
		},
		{"determine tag", "/* \\determine the size */", []string{"the size"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lines(tt.text))
		})
	}
}

func TestExtractBackwardsFindsNearest(t *testing.T) {
	src := "/* first */\n/* second */\nint x;\n"
	u := frontendtest.NewUnit("a.h", src)

	lines, token := Extract(u, u.RangeOf("/* first */\n/* second */\n"), true)
	require.NotNil(t, token)
	assert.Equal(t, []string{"second"}, lines)
	assert.Equal(t, frontend.TokenComment, token.Kind)

	lines, token = Extract(u, u.RangeOf("/* first */\n/* second */\n"), false)
	require.NotNil(t, token)
	assert.Equal(t, []string{"first"}, lines)
}

func TestExtractMiss(t *testing.T) {
	u := frontendtest.NewUnit("a.h", "int x; // late\n")

	lines, token := Extract(u, u.RangeOf("int x;"), true)
	assert.Nil(t, token)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)
}

func TestExtractIsIdempotent(t *testing.T) {
	u := frontendtest.NewUnit("a.h", "// doc\nvoid f(void);\n")
	r := u.RangeOf("// doc\n")

	first, _ := Extract(u, r, true)
	second, _ := Extract(u, r, true)
	assert.Equal(t, first, second)
}

func TestTidy(t *testing.T) {
	in := []string{"", "   first", "\tsecond", "     nested", "", ""}
	assert.Equal(t, []string{"first", " second", "  nested"}, Tidy(in))

	assert.Empty(t, Tidy([]string{"", "  "}))
	assert.Equal(t, []string{"a", "", "b"}, Tidy([]string{"a", "", "b"}))
}
