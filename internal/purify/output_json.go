package purify

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string             `json:"version"`
	Timestamp string             `json:"timestamp"`
	Inputs    []string           `json:"inputs"`
	Output    string             `json:"output"`
	Summary   JSONSummary        `json:"summary"`
	Rejected  []RejectedSelector `json:"rejected"`
}

// JSONSummary contains size and selector counts
type JSONSummary struct {
	BytesBefore      int     `json:"bytes_before"`
	BytesAfter       int     `json:"bytes_after"`
	ReductionPercent float64 `json:"reduction_percent"`
	SelectorsKept    int     `json:"selectors_kept"`
	SelectorsRemoved int     `json:"selectors_removed"`
	RulesRemoved     int     `json:"rules_removed"`
	FilesDiscovered  int     `json:"files_discovered"`
	FilesScanned     int     `json:"files_scanned"`
	FilesSkipped     int     `json:"files_skipped"`
	ElapsedMillis    int64   `json:"elapsed_ms"`
}

// WriteJSON writes the report as JSON
func WriteJSON(w io.Writer, report Report) error {
	output := buildJSONOutput(report)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Report to JSONOutput
func buildJSONOutput(report Report) JSONOutput {
	rejected := report.Rejected
	if rejected == nil {
		rejected = []RejectedSelector{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Inputs:    report.Inputs,
		Output:    report.Output,
		Summary: JSONSummary{
			BytesBefore:      report.BytesBefore,
			BytesAfter:       report.BytesAfter,
			ReductionPercent: report.Reduction(),
			SelectorsKept:    report.Stats.SelectorsKept,
			SelectorsRemoved: report.Stats.SelectorsRemoved,
			RulesRemoved:     report.Stats.RulesRemoved,
			FilesDiscovered:  report.FilesDiscovered,
			FilesScanned:     report.FilesScanned,
			FilesSkipped:     report.FilesSkipped,
			ElapsedMillis:    report.Elapsed.Milliseconds(),
		},
		Rejected: rejected,
	}
}
