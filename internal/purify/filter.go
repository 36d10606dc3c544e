package purify

// Filter removes selectors the content does not use
type Filter struct {
	Usage     *Usage
	Whitelist *Whitelist
}

// FilterResult contains the purified stylesheet and what was dropped
type FilterResult struct {
	Sheet    *Stylesheet
	Stats    Stats
	Rejected []RejectedSelector
}

// Apply returns a purified copy of the stylesheet. The input is not modified.
func (f *Filter) Apply(sheet *Stylesheet) *FilterResult {
	result := &FilterResult{
		Sheet: &Stylesheet{Source: sheet.Source},
	}
	result.Sheet.Nodes = f.filterNodes(sheet.Nodes, sheet.Source, result)
	return result
}

// Used reports whether a single selector survives purification
func (f *Filter) Used(selector string) bool {
	if f.Whitelist.Match(selector) {
		return true
	}
	if f.Usage == nil {
		return len(SelectorWords(selector)) == 0
	}
	if f.Usage.UsesWords(SelectorWords(selector)) {
		return true
	}
	return f.Usage.MatchesDocument(selector)
}

func (f *Filter) filterNodes(nodes []Node, source string, result *FilterResult) []Node {
	kept := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		switch n := n.(type) {
		case *Rule:
			selectors := make([]string, 0, len(n.Selectors))
			for _, sel := range n.Selectors {
				if f.Used(sel) {
					selectors = append(selectors, sel)
					result.Stats.SelectorsKept++
					continue
				}
				result.Stats.SelectorsRemoved++
				result.Rejected = append(result.Rejected, RejectedSelector{
					Selector: sel,
					Source:   source,
				})
			}

			if len(selectors) == 0 {
				result.Stats.RulesRemoved++
				continue
			}
			kept = append(kept, &Rule{
				Selectors:    selectors,
				Declarations: n.Declarations,
			})

		case *AtRule:
			if !n.Conditional() {
				kept = append(kept, n)
				continue
			}

			children := f.filterNodes(n.Children, source, result)
			if len(children) == 0 {
				continue
			}
			kept = append(kept, &AtRule{
				Name:     n.Name,
				Prelude:  n.Prelude,
				Block:    true,
				Children: children,
			})

		default:
			kept = append(kept, n)
		}
	}

	return kept
}
