package purify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// parserState maintains context while building the stylesheet tree
type parserState struct {
	sheet   *Stylesheet
	frames  []frame  // Open blocks, innermost last
	pending []string // Selectors seen before the final one of a comma list
}

// frame is an open block: either an at-rule or a rule, never both
type frame struct {
	atRule *AtRule
	rule   *Rule
	raw    *strings.Builder // Unstructured tokens of an at-rule block
}

// groupAliases renames conditional groups the parser has no grammar for.
// The parser strips vendor prefixes before choosing a grammar, so
// "@-layer-media" is read as a rule list like @media while keeping its name.
var groupAliases = map[string]string{
	"@layer":     "@-layer-media",
	"@container": "@-container-media",
}

// atRuleNames maps aliases back to the at-rule names they stand for
var atRuleNames = map[string]string{
	"@-layer-media":     "@layer",
	"@-container-media": "@container",
}

// ParseCSS parses CSS content into a stylesheet tree
func ParseCSS(r io.Reader, source string) (*Stylesheet, error) {
	src, err := aliasGroups(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	state := &parserState{
		sheet: &Stylesheet{Source: source},
	}

	p := css.NewParser(parse.NewInputBytes(src), false)

	for {
		gt, tt, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse %s: %w", source, err)
			}
			return state.sheet, nil

		case css.QualifiedRuleGrammar:
			// Everything before a comma in a selector list
			if sel := joinTokens(p.Values()); sel != "" {
				state.pending = append(state.pending, sel)
			}

		case css.BeginRulesetGrammar:
			selectors := state.pending
			if sel := joinTokens(p.Values()); sel != "" {
				selectors = append(selectors, sel)
			}
			state.pending = nil

			rule := &Rule{Selectors: selectors}
			state.appendNode(rule)
			state.frames = append(state.frames, frame{rule: rule})

		case css.EndRulesetGrammar:
			state.pop()

		case css.EndAtRuleGrammar:
			state.closeAtRule(source)

		case css.TokenGrammar:
			// Blocks of at-rules the parser has no grammar for (@property, @scope)
			state.appendRawToken(tt, data)

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Name:    atRuleName(data),
				Prelude: joinTokens(p.Values()),
				Block:   true,
			}
			state.appendNode(at)
			state.frames = append(state.frames, frame{atRule: at})

		case css.AtRuleGrammar:
			state.appendNode(&AtRule{
				Name:    atRuleName(data),
				Prelude: joinTokens(p.Values()),
			})

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			state.appendDeclaration(&Declaration{
				Property: string(data),
				Value:    joinTokens(p.Values()),
			})

		default:
			// Comments and stray tokens are dropped
		}
	}
}

// aliasGroups copies the stylesheet token by token, renaming the at-keywords
// listed in groupAliases. The lexer is lossless, so nothing else changes.
func aliasGroups(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	l := css.NewLexer(parse.NewInput(r))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return out.Bytes(), nil
		}
		if tt == css.AtKeywordToken {
			if alias, ok := groupAliases[strings.ToLower(string(data))]; ok {
				out.WriteString(alias)
				continue
			}
		}
		out.Write(data)
	}
}

func atRuleName(data []byte) string {
	name := strings.ToLower(string(data))
	if original, ok := atRuleNames[name]; ok {
		return original
	}
	return name
}

// appendNode adds a rule or at-rule to the innermost open at-rule.
// Rules nested inside rules are hoisted next to their parent.
func (s *parserState) appendNode(n Node) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if at := s.frames[i].atRule; at != nil {
			at.Children = append(at.Children, n)
			return
		}
	}
	s.sheet.Nodes = append(s.sheet.Nodes, n)
}

// appendDeclaration adds a declaration to the innermost open block
func (s *parserState) appendDeclaration(d *Declaration) {
	if len(s.frames) == 0 {
		// Declarations outside any block are invalid CSS
		return
	}
	top := s.frames[len(s.frames)-1]
	if top.rule != nil {
		top.rule.Declarations = append(top.rule.Declarations, d)
		return
	}
	top.atRule.Children = append(top.atRule.Children, d)
}

// appendRawToken records a token of an unstructured at-rule block
func (s *parserState) appendRawToken(tt css.TokenType, data []byte) {
	if len(s.frames) == 0 {
		return
	}
	top := &s.frames[len(s.frames)-1]
	if top.atRule == nil {
		return
	}
	if top.raw == nil {
		top.raw = &strings.Builder{}
	}
	switch tt {
	case css.CommentToken:
		// dropped
	case css.WhitespaceToken:
		top.raw.WriteByte(' ')
	default:
		top.raw.Write(data)
	}
}

// closeAtRule ends the innermost at-rule. An unstructured body of a
// conditional group is parsed again so its rules can be purified; any other
// body is kept verbatim.
func (s *parserState) closeAtRule(source string) {
	if len(s.frames) == 0 {
		return
	}
	top := s.frames[len(s.frames)-1]
	s.pop()

	if top.atRule == nil || top.raw == nil {
		return
	}
	raw := strings.TrimSpace(top.raw.String())
	if raw == "" {
		return
	}

	at := top.atRule
	if conditionalName(at.Name) {
		if nested, err := ParseCSS(strings.NewReader(raw), source); err == nil {
			at.Children = append(at.Children, nested.Nodes...)
			return
		}
	}
	at.Raw = raw
}

func (s *parserState) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// joinTokens rebuilds source text from parser values, collapsing whitespace
func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	space := false
	for _, t := range tokens {
		switch t.TokenType {
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			space = b.Len() > 0
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.Write(t.Data)
		}
	}
	return b.String()
}
