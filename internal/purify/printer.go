package purify

import (
	"io"
	"strings"
)

const indentUnit = "  "

// Print writes stylesheets as readable CSS, in order
func Print(w io.Writer, sheets ...*Stylesheet) error {
	var b strings.Builder
	for _, sheet := range sheets {
		printNodes(&b, sheet.Nodes, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func printNodes(b *strings.Builder, nodes []Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	for _, n := range nodes {
		switch n := n.(type) {
		case *Rule:
			b.WriteString(indent)
			b.WriteString(strings.Join(n.Selectors, ",\n"+indent))
			b.WriteString(" {\n")
			for _, d := range n.Declarations {
				printDeclaration(b, d, depth+1)
			}
			b.WriteString(indent)
			b.WriteString("}\n")

		case *AtRule:
			b.WriteString(indent)
			b.WriteString(n.Name)
			if n.Prelude != "" {
				b.WriteByte(' ')
				b.WriteString(n.Prelude)
			}
			if !n.Block {
				b.WriteString(";\n")
				continue
			}
			b.WriteString(" {\n")
			printNodes(b, n.Children, depth+1)
			if n.Raw != "" {
				b.WriteString(indent + indentUnit)
				b.WriteString(n.Raw)
				b.WriteByte('\n')
			}
			b.WriteString(indent)
			b.WriteString("}\n")

		case *Declaration:
			printDeclaration(b, n, depth)
		}
	}
}

func printDeclaration(b *strings.Builder, d *Declaration, depth int) {
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(d.Property)
	b.WriteString(": ")
	b.WriteString(d.Value)
	b.WriteString(";\n")
}
