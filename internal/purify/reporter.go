package purify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Report summarizes a purification run
type Report struct {
	Inputs          []string
	Output          string
	BytesBefore     int
	BytesAfter      int
	Elapsed         time.Duration
	Stats           Stats
	Rejected        []RejectedSelector
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int
}

// Reduction returns how much smaller the output is, in percent
func (r Report) Reduction() float64 {
	if r.BytesBefore == 0 {
		return 0
	}
	return float64(r.BytesBefore-r.BytesAfter) / float64(r.BytesBefore) * 100
}

// ReportConfig selects which sections a reporter prints
type ReportConfig struct {
	Info      bool // Size and timing statistics
	Rejected  bool // Every removed selector
	UseColors bool // Force color output
}

// Reporter handles formatting and outputting purification reports
type Reporter struct {
	w         io.Writer
	useColors bool
	config    ReportConfig
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(config),
		config:    config,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Reports go to stderr, so that is the terminal that matters
	if fileInfo, err := os.Stderr.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// Print writes every section enabled in the configuration
func (r *Reporter) Print(report Report) {
	if r.config.Info {
		r.PrintInfo(report)
	}
	if r.config.Rejected {
		r.PrintRejected(report.Rejected)
	}
}

// PrintInfo outputs size and timing statistics
func (r *Reporter) PrintInfo(report Report) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "CSS Purification", r.useColors))
	fmt.Fprintln(r.w, "----------------")

	fmt.Fprintf(r.w, "Before:     %s\n", pluralizeCount(report.BytesBefore, "byte", "bytes"))
	fmt.Fprintf(r.w, "After:      %s %s\n",
		pluralizeCount(report.BytesAfter, "byte", "bytes"),
		RenderStyle(StyleGreen, fmt.Sprintf("(%.1f%% smaller)", report.Reduction()), r.useColors))
	fmt.Fprintf(r.w, "Selectors:  %d kept, %d removed\n",
		report.Stats.SelectorsKept, report.Stats.SelectorsRemoved)
	fmt.Fprintf(r.w, "Content:    %s", pluralizeCount(report.FilesScanned, "file", "files"))
	if report.FilesSkipped > 0 {
		fmt.Fprint(r.w, RenderStyle(StyleGray, fmt.Sprintf(" (%d ignored)", report.FilesSkipped), r.useColors))
	}
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "Took:       %s\n", report.Elapsed.Round(time.Millisecond))
	printProgressBar(r.w, report.Reduction())
}

// PrintRejected outputs removed selectors grouped by source file
func (r *Reporter) PrintRejected(rejected []RejectedSelector) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Rejected Selectors", r.useColors))
	fmt.Fprintln(r.w, "------------------")

	if len(rejected) == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "None: every selector is used", r.useColors))
		return
	}

	for _, group := range groupBySource(rejected) {
		fmt.Fprintf(r.w, "%s:\n", RenderStyle(StyleCyan, group.source, r.useColors))
		for _, sel := range group.selectors {
			fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleRed, sel, r.useColors))
		}
	}
}

type sourceGroup struct {
	source    string
	selectors []string
}

// groupBySource groups rejected selectors by file, files sorted, selectors in source order
func groupBySource(rejected []RejectedSelector) []sourceGroup {
	index := make(map[string]int)
	var groups []sourceGroup

	for _, rej := range rejected {
		i, ok := index[rej.Source]
		if !ok {
			i = len(groups)
			index[rej.Source] = i
			groups = append(groups, sourceGroup{source: rej.Source})
		}
		groups[i].selectors = append(groups[i].selectors, rej.Selector)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].source < groups[j].source
	})
	return groups
}

// printProgressBar prints a visual bar of the size reduction
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))
	if filled < 0 {
		filled = 0
	}

	fmt.Fprintf(w, "[%s%s] %.1f%%\n",
		strings.Repeat("█", min(filled, barWidth)),
		strings.Repeat("░", max(barWidth-filled, 0)),
		percentage)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
