package purify

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultWhitelist keeps cgit and Font Awesome selectors regardless of usage
var DefaultWhitelist = []string{"*cgit*", "*fa-*"}

// Whitelist exempts selectors from removal.
//
// Entries containing glob metacharacters are matched against the whole
// selector text. Plain entries match any selector that contains them as a
// word, so "active" keeps ".tab.active" but not ".inactive".
type Whitelist struct {
	globs []string
	words map[string]bool
}

// NewWhitelist validates the patterns and builds a Whitelist
func NewWhitelist(patterns []string) (*Whitelist, error) {
	w := &Whitelist{words: make(map[string]bool)}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if !hasGlobMeta(pattern) {
			w.words[strings.ToLower(pattern)] = true
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid whitelist pattern %q", pattern)
		}
		w.globs = append(w.globs, pattern)
	}

	return w, nil
}

// Match reports whether the selector is exempt from removal
func (w *Whitelist) Match(selector string) bool {
	if w == nil {
		return false
	}

	// Selectors are not paths: a "/" (escaped in class names like ".w-1\/2")
	// must not stop "*" unless the pattern itself names one
	unslashed := strings.ReplaceAll(selector, "/", "\x00")
	for _, pattern := range w.globs {
		subject := unslashed
		if strings.Contains(pattern, "/") {
			subject = selector
		}
		// Validated in NewWhitelist, so the error is always nil
		if ok, _ := doublestar.Match(pattern, subject); ok {
			return true
		}
	}

	if len(w.words) > 0 {
		for _, name := range selectorNames(selector) {
			if w.words[name] {
				return true
			}
		}
	}

	return false
}

// selectorNames splits a selector into its tag, class and id names
func selectorNames(selector string) []string {
	return strings.FieldsFunc(strings.ToLower(selector), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	})
}

// hasGlobMeta reports whether the pattern uses doublestar syntax
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
