package purify

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Usage indexes what the scanned content uses: letter runs from raw text and
// parsed HTML documents for DOM matching.
// It caches compiled selectors and is not safe for concurrent use.
type Usage struct {
	words     map[string]bool
	documents []*goquery.Document
	compiled  map[string]cascadia.Selector
}

// NewUsage creates an empty usage index
func NewUsage() *Usage {
	return &Usage{
		words:    make(map[string]bool),
		compiled: make(map[string]cascadia.Selector),
	}
}

// AddText records every word of the content
func (u *Usage) AddText(text string) {
	for _, word := range ContentWords(text) {
		u.words[word] = true
	}
}

// AddDocument parses HTML content for DOM matching
func (u *Usage) AddDocument(r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return err
	}
	u.documents = append(u.documents, doc)
	return nil
}

// HasWord reports whether the word appeared in any text content
func (u *Usage) HasWord(word string) bool {
	return u.words[word]
}

// WordCount returns the number of distinct words recorded
func (u *Usage) WordCount() int {
	return len(u.words)
}

// DocumentCount returns the number of parsed HTML documents
func (u *Usage) DocumentCount() int {
	return len(u.documents)
}

// UsesWords reports whether every word is present in the content.
// An empty list is trivially used.
func (u *Usage) UsesWords(words []string) bool {
	for _, w := range words {
		if !u.HasWord(w) {
			return false
		}
	}
	return true
}

// MatchesDocument reports whether the selector matches an element in any
// parsed document. Selectors cascadia cannot compile never match.
func (u *Usage) MatchesDocument(selector string) bool {
	if len(u.documents) == 0 {
		return false
	}

	sel, ok := u.compiled[selector]
	if !ok {
		static := staticSelector(selector)
		if static != "" {
			if compiled, err := cascadia.Compile(static); err == nil {
				sel = compiled
			}
		}
		u.compiled[selector] = sel
	}
	if sel == nil {
		return false
	}

	for _, doc := range u.documents {
		if doc.FindMatcher(sel).Length() > 0 {
			return true
		}
	}
	return false
}
