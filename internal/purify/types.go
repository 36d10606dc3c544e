package purify

// Node is an element of a parsed stylesheet: *Rule, *AtRule or *Declaration.
type Node interface {
	node()
}

// Rule is a qualified rule: a selector list followed by a declaration block
type Rule struct {
	Selectors    []string       // ".btn", "a:hover" (one per comma-separated entry)
	Declarations []*Declaration // Declarations in source order
}

// AtRule is an at-rule, with or without a block
type AtRule struct {
	Name     string // "@media"
	Prelude  string // "screen and (min-width:600px)"
	Block    bool   // false for statements like @import
	Children []Node // Rules, nested at-rules or declarations (@font-face)
	Raw      string // Block body the parser did not structure, printed verbatim
}

// Declaration is a property: value pair
type Declaration struct {
	Property string // "color" or "--brand"
	Value    string // "red!important"
}

func (*Rule) node()        {}
func (*AtRule) node()      {}
func (*Declaration) node() {}

// Stylesheet is the parsed form of one CSS file
type Stylesheet struct {
	Source string // File path, used in reports
	Nodes  []Node
}

// Conditional reports whether the at-rule's children are ordinary rules that
// take part in purification.
func (a *AtRule) Conditional() bool {
	return a.Block && a.Raw == "" && conditionalName(a.Name)
}

func conditionalName(name string) bool {
	switch name {
	case "@media", "@supports", "@layer", "@container", "@document", "@-moz-document":
		return true
	}
	return false
}

// RejectedSelector is a selector removed from the output
type RejectedSelector struct {
	Selector string `json:"selector"`
	Source   string `json:"source"`
}

// Stats counts selectors seen during filtering
type Stats struct {
	SelectorsKept    int
	SelectorsRemoved int
	RulesRemoved     int
}

// OutputFormat represents the report format
type OutputFormat string

const (
	// OutputText prints a styled terminal report
	OutputText OutputFormat = "text"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
