package csspurify

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/csspurify/internal/purify"
)

// DefaultConcurrency is the number of content files read in parallel
const DefaultConcurrency = 8

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by paths and glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to .gitignore
}

// ScanOptions configures content scanning
type ScanOptions struct {
	Concurrency int         // Max files read at once (default: 8)
	StrictHTML  bool        // HTML files feed DOM matching only, not words
	Logger      *zap.Logger // nil disables logging
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile reports whether the project .gitignore excludes the file.
// Absolute paths (like /tmp/...) are never affected by the project gitignore.
func shouldSkipFile(path string) bool {
	if filepath.IsAbs(path) {
		return false
	}
	gi := loadGitIgnore()
	return gi != nil && gi.MatchesPath(path)
}

// isHTML reports whether content should also be parsed as a document
func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// hasGlobMeta reports whether a content argument is a pattern rather than a path
func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// ScanContent reads the content files and indexes the words and documents
// they contain. Each entry is a file path or a doublestar glob. A plain path
// that does not exist is an error; a glob that matches nothing is not.
func ScanContent(ctx context.Context, patterns []string, opts ScanOptions) (*purify.Usage, ScanStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	files, stats, err := expandContentPatterns(patterns, logger)
	if err != nil {
		return nil, stats, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	contents := make([][]byte, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// #nosec G304 - paths come from the command line
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read content %s: %w", file, err)
			}
			contents[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	// Index sequentially, in argument order, so results never depend on scheduling
	usage := purify.NewUsage()
	for i, file := range files {
		html := isHTML(file)
		if html {
			if err := usage.AddDocument(bytes.NewReader(contents[i])); err != nil {
				return nil, stats, fmt.Errorf("parse HTML %s: %w", file, err)
			}
		}
		if !html || !opts.StrictHTML {
			usage.AddText(string(contents[i]))
		}
		logger.Debug("scanned content", zap.String("file", file), zap.Bool("html", html))
	}

	logger.Debug("content indexed",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("words", usage.WordCount()),
		zap.Int("documents", usage.DocumentCount()))

	return usage, stats, nil
}

// expandContentPatterns expands globs, deduplicates and tracks statistics
func expandContentPatterns(patterns []string, logger *zap.Logger) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		var matches []string

		if hasGlobMeta(pattern) {
			var err error
			matches, err = doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				logger.Warn("content pattern matched no files", zap.String("pattern", pattern))
			}
		} else {
			if _, err := os.Stat(pattern); err != nil {
				return nil, stats, fmt.Errorf("content file: %w", err)
			}
			matches = []string{pattern}
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			// Explicit paths are always scanned; only glob results honor .gitignore
			if hasGlobMeta(pattern) && shouldSkipFile(match) {
				stats.FilesSkipped++
				logger.Debug("skipping ignored file", zap.String("file", match))
				continue
			}

			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}
