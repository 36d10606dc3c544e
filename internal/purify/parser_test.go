package purify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, css string) *Stylesheet {
	t.Helper()
	sheet, err := ParseCSS(strings.NewReader(css), "test.css")
	require.NoError(t, err)
	return sheet
}

func TestParseCSS(t *testing.T) {
	tests := []struct {
		name  string
		css   string
		check func(*testing.T, *Stylesheet)
	}{
		{
			name: "single rule",
			css:  ".btn { color: red; }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				rule, ok := s.Nodes[0].(*Rule)
				require.True(t, ok)
				assert.Equal(t, []string{".btn"}, rule.Selectors)
				require.Len(t, rule.Declarations, 1)
				assert.Equal(t, "color", rule.Declarations[0].Property)
				assert.Equal(t, "red", rule.Declarations[0].Value)
			},
		},
		{
			name: "selector list",
			css:  ".a, .b > p,\n#main { margin: 0 }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				rule := s.Nodes[0].(*Rule)
				assert.Equal(t, []string{".a", ".b > p", "#main"}, rule.Selectors)
			},
		},
		{
			name: "multi-token value",
			css:  ".box { border: 1px solid #000; }",
			check: func(t *testing.T, s *Stylesheet) {
				rule := s.Nodes[0].(*Rule)
				assert.Equal(t, "1px solid #000", rule.Declarations[0].Value)
			},
		},
		{
			name: "comments dropped",
			css:  "/* header */ .a { color: red; } /* footer */",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				assert.Equal(t, []string{".a"}, s.Nodes[0].(*Rule).Selectors)
			},
		},
		{
			name: "media query children",
			css:  "@media print { .a { color: red; } .b { color: blue; } }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				at, ok := s.Nodes[0].(*AtRule)
				require.True(t, ok)
				assert.Equal(t, "@media", at.Name)
				assert.Equal(t, "print", at.Prelude)
				assert.True(t, at.Block)
				assert.True(t, at.Conditional())
				require.Len(t, at.Children, 2)
				assert.Equal(t, []string{".b"}, at.Children[1].(*Rule).Selectors)
			},
		},
		{
			name: "import statement",
			css:  `@import url("base.css"); .a { color: red; }`,
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 2)
				at := s.Nodes[0].(*AtRule)
				assert.Equal(t, "@import", at.Name)
				assert.False(t, at.Block)
				assert.False(t, at.Conditional())
			},
		},
		{
			name: "font-face declarations",
			css:  `@font-face { font-family: "Icons"; src: url(icons.woff2); }`,
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				at := s.Nodes[0].(*AtRule)
				assert.Equal(t, "@font-face", at.Name)
				assert.False(t, at.Conditional())
				require.Len(t, at.Children, 2)
				decl, ok := at.Children[0].(*Declaration)
				require.True(t, ok)
				assert.Equal(t, "font-family", decl.Property)
			},
		},
		{
			name: "keyframes are not conditional",
			css:  "@keyframes spin { from { opacity: 0 } to { opacity: 1 } }",
			check: func(t *testing.T, s *Stylesheet) {
				at := s.Nodes[0].(*AtRule)
				assert.Equal(t, "@keyframes", at.Name)
				assert.Equal(t, "spin", at.Prelude)
				assert.False(t, at.Conditional())
			},
		},
		{
			name: "layer block holds rules",
			css:  "@layer components { .card { padding: 1rem; } }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				at := s.Nodes[0].(*AtRule)
				assert.Equal(t, "@layer", at.Name)
				assert.True(t, at.Conditional())
				require.Len(t, at.Children, 1)
				assert.Equal(t, []string{".card"}, at.Children[0].(*Rule).Selectors)
			},
		},
		{
			name: "container block keeps descendant combinators",
			css:  "@container sidebar (min-width: 400px) { .nav .item { display: none } }",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				at := s.Nodes[0].(*AtRule)
				assert.Equal(t, "@container", at.Name)
				assert.Equal(t, "sidebar (min-width: 400px)", at.Prelude)
				require.Len(t, at.Children, 1)
				assert.Equal(t, []string{".nav .item"}, at.Children[0].(*Rule).Selectors)
			},
		},
		{
			name: "layer statement",
			css:  "@layer base, components;",
			check: func(t *testing.T, s *Stylesheet) {
				require.Len(t, s.Nodes, 1)
				at := s.Nodes[0].(*AtRule)
				assert.Equal(t, "@layer", at.Name)
				assert.Equal(t, "base, components", at.Prelude)
				assert.False(t, at.Block)
			},
		},
		{
			name: "empty input",
			css:  "",
			check: func(t *testing.T, s *Stylesheet) {
				assert.Empty(t, s.Nodes)
				assert.Equal(t, "test.css", s.Source)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, parseString(t, tt.css))
		})
	}
}
