package purify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(t *testing.T, content string, whitelist ...string) *Filter {
	t.Helper()
	usage := NewUsage()
	usage.AddText(content)
	w, err := NewWhitelist(whitelist)
	require.NoError(t, err)
	return &Filter{Usage: usage, Whitelist: w}
}

func selectorsOf(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *Rule:
			out = append(out, n.Selectors...)
		case *AtRule:
			out = append(out, selectorsOf(n.Children)...)
		}
	}
	return out
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name         string
		css          string
		content      string
		whitelist    []string
		wantKept     []string
		wantRejected []string
	}{
		{
			name:         "unused class removed",
			css:          ".btn { color: red } .card { padding: 0 }",
			content:      `<a class="btn">`,
			wantKept:     []string{".btn"},
			wantRejected: []string{".card"},
		},
		{
			name:         "selector list partially kept",
			css:          ".btn, .ghost, a { color: red }",
			content:      `<a class="btn">`,
			wantKept:     []string{".btn", "a"},
			wantRejected: []string{".ghost"},
		},
		{
			name:         "compound needs every word",
			css:          ".nav .item { color: red } .nav .missing { color: blue }",
			content:      `<ul class="nav"><li class="item">`,
			wantKept:     []string{".nav .item"},
			wantRejected: []string{".nav .missing"},
		},
		{
			name:     "pseudo-class does not need content",
			css:      "a:hover { color: red }",
			content:  `<a href="#">`,
			wantKept: []string{"a:hover"},
		},
		{
			name:     "universal always kept",
			css:      "* { box-sizing: border-box }",
			content:  "",
			wantKept: []string{"*"},
		},
		{
			name:         "whitelist keeps unused",
			css:          ".cgit-tree { color: red } .fa-user { color: blue } .unused { color: green }",
			content:      "",
			whitelist:    DefaultWhitelist,
			wantKept:     []string{".cgit-tree", ".fa-user"},
			wantRejected: []string{".unused"},
		},
		{
			name:         "media group purified",
			css:          "@media print { .btn { color: red } .card { color: blue } }",
			content:      "btn",
			wantKept:     []string{".btn"},
			wantRejected: []string{".card"},
		},
		{
			name:         "dynamic class names found in scripts",
			css:          ".is-open { display: block }",
			content:      `el.classList.add("is-" + "open")`,
			wantKept:     []string{".is-open"},
			wantRejected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := parseString(t, tt.css)
			f := newTestFilter(t, tt.content, tt.whitelist...)

			result := f.Apply(sheet)
			assert.Equal(t, tt.wantKept, selectorsOf(result.Sheet.Nodes))

			var rejected []string
			for _, r := range result.Rejected {
				rejected = append(rejected, r.Selector)
				assert.Equal(t, "test.css", r.Source)
			}
			assert.Equal(t, tt.wantRejected, rejected)
			assert.Equal(t, len(tt.wantKept), result.Stats.SelectorsKept)
			assert.Equal(t, len(tt.wantRejected), result.Stats.SelectorsRemoved)
		})
	}
}

func TestFilterApply_EmptyGroupsDropped(t *testing.T) {
	sheet := parseString(t, "@media print { .card { color: blue } } .btn { color: red }")
	result := newTestFilter(t, "btn").Apply(sheet)

	require.Len(t, result.Sheet.Nodes, 1)
	_, isRule := result.Sheet.Nodes[0].(*Rule)
	assert.True(t, isRule)
	assert.Equal(t, 1, result.Stats.RulesRemoved)
}

func TestFilterApply_VerbatimAtRules(t *testing.T) {
	css := `@charset "utf-8";
@font-face { font-family: "Icons"; src: url(icons.woff2); }
@keyframes spin { from { opacity: 0 } to { opacity: 1 } }
.unused { animation: spin 1s; }`

	sheet := parseString(t, css)
	result := newTestFilter(t, "").Apply(sheet)

	require.Len(t, result.Sheet.Nodes, 3)
	names := make([]string, 0, 3)
	for _, n := range result.Sheet.Nodes {
		names = append(names, n.(*AtRule).Name)
	}
	assert.Equal(t, []string{"@charset", "@font-face", "@keyframes"}, names)
}

func TestFilterApply_DoesNotModifyInput(t *testing.T) {
	sheet := parseString(t, ".a, .b { color: red }")
	newTestFilter(t, "a").Apply(sheet)

	assert.Equal(t, []string{".a", ".b"}, sheet.Nodes[0].(*Rule).Selectors)
}

func TestFilterUsed_NoUsage(t *testing.T) {
	f := &Filter{}
	assert.False(t, f.Used(".btn"))
	assert.True(t, f.Used("*"))
}

func TestFilterApply_DocumentMatch(t *testing.T) {
	usage := NewUsage()
	require.NoError(t, usage.AddDocument(strings.NewReader(
		`<html><body><nav class="menu"><a class="link">Home</a></nav></body></html>`)))

	f := &Filter{Usage: usage}
	result := f.Apply(parseString(t, ".menu > .link:hover { color: red } .menu > .footer { color: blue }"))

	assert.Equal(t, []string{".menu > .link:hover"}, selectorsOf(result.Sheet.Nodes))
}
