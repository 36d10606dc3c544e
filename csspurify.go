// Package csspurify removes unused CSS rules.
//
// It scans content files (HTML, templates, JavaScript, anything textual) for
// the words a selector is made of, drops every selector the content never
// mentions, and optionally minifies what remains.
//
// # Purifying
//
//	result, err := csspurify.Purify(ctx,
//		[]string{"templates/**/*.html", "static/app.js"},
//		[]string{"static/main.css"},
//		csspurify.DefaultOptions("static/main.min.css"),
//	)
//
// A selector survives when every tag, class and id word in it occurs in the
// content, when it matches an element of a scanned HTML document, or when it
// matches a whitelist glob such as "*fa-*".
//
// # CLI Tool
//
// csspurify also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/csspurify/cmd/csspurify@latest
package csspurify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/yacobolo/csspurify/internal/purify"
)

// ErrNoInput is returned when no stylesheet path is given
var ErrNoInput = errors.New("no input stylesheet")

// Re-exported so callers outside this module can name report types
type (
	Report           = purify.Report
	ReportConfig     = purify.ReportConfig
	RejectedSelector = purify.RejectedSelector
	Stats            = purify.Stats
)

// Options holds purification configuration
type Options struct {
	Minify      bool        // Minify the output (default: true)
	Output      string      // Path to write; empty returns the CSS only
	Whitelist   []string    // Globs for selectors never removed (default: "*cgit*", "*fa-*")
	Info        bool        // Print size and timing statistics
	Rejected    bool        // Print every removed selector
	Color       bool        // Force colors in the printed report
	ReportTo    io.Writer   // Destination of the printed report (default: stderr)
	StrictHTML  bool        // HTML content is matched as a DOM, not as words
	Concurrency int         // Max content files read at once (default: 8)
	Logger      *zap.Logger // nil disables logging
}

// DefaultOptions returns the options the CLI uses when nothing is configured
func DefaultOptions(output string) Options {
	return Options{
		Minify:      true,
		Output:      output,
		Whitelist:   append([]string(nil), purify.DefaultWhitelist...),
		Concurrency: DefaultConcurrency,
	}
}

// Result contains the purified CSS and run statistics
type Result struct {
	CSS    []byte
	Report Report
}

// Purify removes the rules of the stylesheets that the content does not use
// and, when opts.Output is set, writes the result there.
//
// Every stylesheet is read and parsed before anything is written, and the
// output is replaced atomically, so a failed run never leaves a partial file.
func Purify(ctx context.Context, content []string, stylesheets []string, opts Options) (*Result, error) {
	start := time.Now()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(stylesheets) == 0 {
		return nil, ErrNoInput
	}
	for _, path := range stylesheets {
		if path == "" {
			return nil, ErrNoInput
		}
	}

	whitelist, err := purify.NewWhitelist(opts.Whitelist)
	if err != nil {
		return nil, err
	}

	// 1. Parse stylesheets
	sheets := make([]*purify.Stylesheet, 0, len(stylesheets))
	bytesBefore := 0
	for _, path := range stylesheets {
		// #nosec G304 - path comes from the command line
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet: %w", err)
		}
		bytesBefore += len(data)

		sheet, err := purify.ParseCSS(bytes.NewReader(data), path)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed stylesheet", zap.String("file", path), zap.Int("nodes", len(sheet.Nodes)))
		sheets = append(sheets, sheet)
	}

	// 2. Scan content
	usage, scanStats, err := ScanContent(ctx, content, ScanOptions{
		Concurrency: opts.Concurrency,
		StrictHTML:  opts.StrictHTML,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	// 3. Filter
	filter := &purify.Filter{Usage: usage, Whitelist: whitelist}
	report := Report{
		Inputs:          stylesheets,
		Output:          opts.Output,
		BytesBefore:     bytesBefore,
		FilesDiscovered: scanStats.FilesDiscovered,
		FilesScanned:    scanStats.FilesScanned,
		FilesSkipped:    scanStats.FilesSkipped,
	}

	kept := make([]*purify.Stylesheet, 0, len(sheets))
	for _, sheet := range sheets {
		fr := filter.Apply(sheet)
		kept = append(kept, fr.Sheet)
		report.Stats.SelectorsKept += fr.Stats.SelectorsKept
		report.Stats.SelectorsRemoved += fr.Stats.SelectorsRemoved
		report.Stats.RulesRemoved += fr.Stats.RulesRemoved
		report.Rejected = append(report.Rejected, fr.Rejected...)
	}

	// 4. Print and minify
	var buf bytes.Buffer
	if err := purify.Print(&buf, kept...); err != nil {
		return nil, fmt.Errorf("print stylesheet: %w", err)
	}
	out := buf.Bytes()
	if opts.Minify {
		if out, err = purify.Minify(out); err != nil {
			return nil, err
		}
	}
	report.BytesAfter = len(out)

	// 5. Write
	if opts.Output != "" {
		if err := writeFileAtomic(opts.Output, out); err != nil {
			return nil, err
		}
	}

	report.Elapsed = time.Since(start)

	if opts.Info || opts.Rejected {
		w := opts.ReportTo
		if w == nil {
			w = os.Stderr
		}
		purify.NewReporter(w, ReportConfig{
			Info:      opts.Info,
			Rejected:  opts.Rejected,
			UseColors: opts.Color,
		}).Print(report)
	}

	logger.Info("purified",
		zap.Strings("inputs", stylesheets),
		zap.String("output", opts.Output),
		zap.Int("kept", report.Stats.SelectorsKept),
		zap.Int("removed", report.Stats.SelectorsRemoved),
		zap.Int("bytes_before", report.BytesBefore),
		zap.Int("bytes_after", report.BytesAfter))

	return &Result{CSS: out, Report: report}, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".csspurify-*")
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
