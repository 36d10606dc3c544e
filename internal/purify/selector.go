package purify

import (
	"regexp"
	"strings"
)

// attributeSelector matches a simple [attr...] block
var attributeSelector = regexp.MustCompile(`\[(.+?)\]`)

// SelectorWords extracts the identifiers a selector needs to find in content.
//
// Tag names, classes and ids each become words split on any non-letter, so
// ".btn-primary:hover > a" yields [btn primary a]. Pseudo-classes and the
// universal selector are skipped. A selector with leftover brackets (nested or
// malformed attribute selectors) yields no words, so it is always kept.
func SelectorWords(selector string) []string {
	selector = strings.ToLower(attributeSelector.ReplaceAllString(selector, ""))
	if strings.ContainsAny(selector, "[]") {
		return nil
	}

	var words []string
	var word strings.Builder
	skipNext := false

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, r := range selector {
		if skipNext && r != ' ' && r != '#' && r != '.' {
			continue
		}

		switch {
		case r == ':' || r == '*':
			// Pseudo-class or universal: the following word is not content
			flush()
			skipNext = true
		case r >= 'a' && r <= 'z':
			word.WriteRune(r)
		default:
			flush()
			skipNext = false
		}
	}
	flush()

	return words
}

// ContentWords splits text into the lower-case letter runs a selector word can match
func ContentWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

// dynamicPseudo matches pseudo-elements and state pseudo-classes that can never
// match a static document
var dynamicPseudo = regexp.MustCompile(
	`::?(?:before|after|first-line|first-letter|selection|placeholder-shown|placeholder|marker|backdrop|` +
		`hover|focus-within|focus-visible|focus|active|visited|link|target|checked|` +
		`disabled|enabled|invalid|valid|required|optional|-[a-z-]+)(?:\([^)]*\))?`)

// staticSelector strips state pseudo-classes so the selector can be matched
// against a parsed document
func staticSelector(selector string) string {
	s := strings.TrimSpace(dynamicPseudo.ReplaceAllString(selector, ""))
	if s == "" {
		return ""
	}
	// ".menu :hover" leaves a dangling combinator
	s = strings.TrimRight(s, " >+~")
	return s
}
