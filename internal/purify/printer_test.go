package purify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  string
	}{
		{
			name: "rule",
			nodes: []Node{
				&Rule{Selectors: []string{".a"}, Declarations: []*Declaration{{Property: "color", Value: "red"}}},
			},
			want: ".a {\n  color: red;\n}\n",
		},
		{
			name: "selector list on separate lines",
			nodes: []Node{
				&Rule{Selectors: []string{".a", ".b"}, Declarations: []*Declaration{{Property: "margin", Value: "0"}}},
			},
			want: ".a,\n.b {\n  margin: 0;\n}\n",
		},
		{
			name: "statement at-rule",
			nodes: []Node{
				&AtRule{Name: "@import", Prelude: `url("base.css")`},
			},
			want: "@import url(\"base.css\");\n",
		},
		{
			name: "nested group",
			nodes: []Node{
				&AtRule{Name: "@media", Prelude: "print", Block: true, Children: []Node{
					&Rule{Selectors: []string{".a"}, Declarations: []*Declaration{{Property: "color", Value: "red"}}},
				}},
			},
			want: "@media print {\n  .a {\n    color: red;\n  }\n}\n",
		},
		{
			name: "declaration block",
			nodes: []Node{
				&AtRule{Name: "@font-face", Block: true, Children: []Node{
					&Declaration{Property: "font-family", Value: `"Icons"`},
				}},
			},
			want: "@font-face {\n  font-family: \"Icons\";\n}\n",
		},
		{
			name: "raw body",
			nodes: []Node{
				&AtRule{Name: "@property", Prelude: "--x", Block: true, Raw: "syntax: '<length>'; inherits: false;"},
			},
			want: "@property --x {\n  syntax: '<length>'; inherits: false;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Print(&buf, &Stylesheet{Nodes: tt.nodes}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrint_MultipleSheetsInOrder(t *testing.T) {
	first := parseString(t, ".first { color: red }")
	second := parseString(t, ".second { color: blue }")

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, first, second))
	assert.Equal(t, ".first {\n  color: red;\n}\n.second {\n  color: blue;\n}\n", buf.String())
}

func TestPrint_ParsesBack(t *testing.T) {
	css := "@media (min-width: 600px) { .nav > a:hover, .nav .item { color: #fff; margin: 0 auto } }"
	sheet := parseString(t, css)

	var first bytes.Buffer
	require.NoError(t, Print(&first, sheet))

	var second bytes.Buffer
	require.NoError(t, Print(&second, parseString(t, first.String())))
	assert.Equal(t, first.String(), second.String())
}
