package purify

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes the report as a Markdown document
func WriteMarkdown(w io.Writer, report Report) error {
	var b strings.Builder

	b.WriteString("# CSS Purification Report\n\n")
	fmt.Fprintf(&b, "**Input:** %s  \n", strings.Join(report.Inputs, ", "))
	if report.Output != "" {
		fmt.Fprintf(&b, "**Output:** %s\n", report.Output)
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Bytes before | %d |\n", report.BytesBefore)
	fmt.Fprintf(&b, "| Bytes after | %d |\n", report.BytesAfter)
	fmt.Fprintf(&b, "| Reduction | %.1f%% |\n", report.Reduction())
	fmt.Fprintf(&b, "| Selectors kept | %d |\n", report.Stats.SelectorsKept)
	fmt.Fprintf(&b, "| Selectors removed | %d |\n", report.Stats.SelectorsRemoved)
	fmt.Fprintf(&b, "| Content files | %d |\n", report.FilesScanned)
	if report.FilesSkipped > 0 {
		fmt.Fprintf(&b, "| Ignored files | %d of %d |\n", report.FilesSkipped, report.FilesDiscovered)
	}

	if len(report.Rejected) > 0 {
		b.WriteString("\n## Rejected Selectors\n")
		for _, group := range groupBySource(report.Rejected) {
			fmt.Fprintf(&b, "\n### %s\n\n", group.source)
			for _, sel := range group.selectors {
				fmt.Fprintf(&b, "- `%s`\n", sel)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
