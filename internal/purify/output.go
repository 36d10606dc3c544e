package purify

import (
	"fmt"
	"io"
)

// DetermineOutputFormat selects the report format from the flag value.
// Unknown or empty values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	default:
		return OutputText
	}
}

// WriteReport writes the report in the specified format.
// Text output honors the Info and Rejected switches; structured formats always
// carry every section.
func WriteReport(w io.Writer, report Report, format OutputFormat, config ReportConfig) error {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, report); err != nil {
			return fmt.Errorf("writing JSON report: %w", err)
		}
	case OutputMarkdown:
		if err := WriteMarkdown(w, report); err != nil {
			return fmt.Errorf("writing Markdown report: %w", err)
		}
	default:
		NewReporter(w, config).Print(report)
	}
	return nil
}
