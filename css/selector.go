package css

import (
	cssparse "github.com/tdewolff/parse/v2/css"
)

// Clone returns a deep copy of the selector.
func (s Selector) Clone() Selector {
	parts := make([]SelectorPart, len(s.Parts))
	copy(parts, s.Parts)
	for i := range parts {
		if parts[i].Attr != nil {
			attr := *parts[i].Attr
			parts[i].Attr = &attr
		}
	}
	return Selector{Parts: parts}
}

// Combine resolves the relative-parent references of first against second:
// every RelativeParent part in first is replaced by second's full part list.
// When first carries no reference, second is appended instead.
func Combine(first, second Selector) Selector {
	if len(second.Parts) == 0 {
		return first.Clone()
	}

	hasRelative := false
	for _, part := range first.Parts {
		if part.Kind == SelectorRelativeParent {
			hasRelative = true
			break
		}
	}

	var parts []SelectorPart
	if !hasRelative {
		parts = append(parts, first.Clone().Parts...)
		parts = append(parts, second.Clone().Parts...)
		return Selector{Parts: parts}
	}

	for _, part := range first.Parts {
		if part.Kind == SelectorRelativeParent {
			parts = append(parts, second.Clone().Parts...)
		} else {
			parts = append(parts, part)
		}
	}
	return Selector{Parts: parts}
}

// parseSelectorList parses a comma-separated selector list. With nested set,
// selectors that do not reference their parent are prefixed with an implicit
// "& " so that nested rules always resolve against the enclosing selector.
func parseSelectorList(toks []token, nested bool) ([]Selector, error) {
	segments := splitTopLevel(toks, cssparse.CommaToken)
	if len(segments) == 0 {
		return nil, errAt(segmentOffset(toks), "expected a selector")
	}

	selectors := make([]Selector, 0, len(segments))
	for _, segment := range segments {
		sel, err := parseSelector(segment, nested)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	return selectors, nil
}

func segmentOffset(toks []token) int {
	if len(toks) == 0 {
		return 0
	}
	return toks[0].offset
}

// parseSelector parses one selector chain into parts in source order,
// compound selectors separated by explicit combinator parts.
func parseSelector(toks []token, nested bool) (Selector, error) {
	toks = trimWhitespace(toks)
	if len(toks) == 0 {
		return Selector{}, errAt(0, "expected a selector")
	}

	var sel Selector
	appendCombinator := func(kind SelectorKind, offset int) error {
		if len(sel.Parts) == 0 {
			if kind == SelectorChild {
				return errAt(offset, "unexpected combinator at start of selector")
			}
			return nil
		}
		last := sel.Parts[len(sel.Parts)-1]
		if last.Kind.IsCombinator() {
			if kind == SelectorChild && last.Kind == SelectorDescendant {
				// "a > b" lexes the whitespace before '>' first.
				sel.Parts[len(sel.Parts)-1] = EmptyPart(SelectorChild)
				return nil
			}
			if kind == SelectorDescendant {
				// Trailing whitespace after '>' or a comment split into
				// two whitespace runs adds nothing.
				return nil
			}
			return errAt(offset, "unexpected combinator")
		}
		sel.Parts = append(sel.Parts, EmptyPart(kind))
		return nil
	}

	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.is(cssparse.WhitespaceToken):
			if err := appendCombinator(SelectorDescendant, t.offset); err != nil {
				return Selector{}, err
			}
			i++

		case t.isDelim('>'):
			if err := appendCombinator(SelectorChild, t.offset); err != nil {
				return Selector{}, err
			}
			i++

		case t.is(cssparse.IdentToken):
			sel.Parts = append(sel.Parts, Part(SelectorType, String(t.data)))
			i++

		case t.is(cssparse.HashToken):
			sel.Parts = append(sel.Parts, Part(SelectorID, String(t.data[1:])))
			i++

		case t.isDelim('.'):
			if i+1 >= len(toks) || !toks[i+1].is(cssparse.IdentToken) {
				sel.Parts = append(sel.Parts, Part(SelectorUnknown, String(t.data)))
				i++
				break
			}
			sel.Parts = append(sel.Parts, Part(SelectorClass, String(toks[i+1].data)))
			i += 2

		case t.isDelim('*'):
			sel.Parts = append(sel.Parts, EmptyPart(SelectorAnyElement))
			i++

		case t.isDelim('&'):
			sel.Parts = append(sel.Parts, EmptyPart(SelectorRelativeParent))
			i++

		case t.is(cssparse.ColonToken):
			i++
			// Pseudo-elements use a double colon; they parse like
			// pseudo-classes.
			if i < len(toks) && toks[i].is(cssparse.ColonToken) {
				i++
			}
			if i >= len(toks) || !toks[i].is(cssparse.IdentToken) {
				sel.Parts = append(sel.Parts, Part(SelectorUnknown, String(t.data)))
				break
			}
			if toks[i].data == "root" {
				sel.Parts = append(sel.Parts, EmptyPart(SelectorDocumentRoot))
			} else {
				sel.Parts = append(sel.Parts, Part(SelectorPseudoClass, String(toks[i].data)))
			}
			i++

		case t.is(cssparse.LeftBracketToken):
			part, consumed, err := parseAttributeSelector(toks[i:])
			if err != nil {
				return Selector{}, err
			}
			sel.Parts = append(sel.Parts, part)
			i += consumed

		default:
			// Stray punctuation degrades to an unknown part so the rest
			// of the chain still parses.
			sel.Parts = append(sel.Parts, Part(SelectorUnknown, String(t.data)))
			i++
		}
	}

	if len(sel.Parts) > 0 && sel.Parts[len(sel.Parts)-1].Kind.IsCombinator() {
		return Selector{}, errAt(toks[len(toks)-1].offset, "selector ends with a combinator")
	}

	if nested {
		hasRelative := false
		for _, part := range sel.Parts {
			if part.Kind == SelectorRelativeParent {
				hasRelative = true
				break
			}
		}
		if !hasRelative {
			prefixed := make([]SelectorPart, 0, len(sel.Parts)+2)
			prefixed = append(prefixed, EmptyPart(SelectorRelativeParent), EmptyPart(SelectorDescendant))
			sel.Parts = append(prefixed, sel.Parts...)
		}
	}
	return sel, nil
}

// parseAttributeSelector parses "[name]" or "[name <op> value]" starting at
// the opening bracket, returning the part and the number of tokens consumed.
func parseAttributeSelector(toks []token) (SelectorPart, int, error) {
	start := toks[0].offset

	end := -1
	for i, t := range toks {
		if t.is(cssparse.RightBracketToken) {
			end = i
			break
		}
	}
	if end < 0 {
		return SelectorPart{}, 0, errAt(start, "unterminated attribute selector")
	}

	inner := trimWhitespace(toks[1:end])
	if len(inner) == 0 || !inner[0].is(cssparse.IdentToken) {
		return SelectorPart{}, 0, errAt(start, "expected an attribute name")
	}

	attr := AttributeMatch{Name: inner[0].data, Operator: AttrExists, Value: Empty()}
	rest := trimWhitespace(inner[1:])

	if len(rest) > 0 {
		op, ok := attributeOperator(rest[0])
		if !ok {
			return SelectorPart{}, 0, errAt(rest[0].offset, "expected an attribute operator")
		}
		valueToks := trimWhitespace(rest[1:])
		if len(valueToks) != 1 {
			return SelectorPart{}, 0, errAt(rest[0].offset, "expected an attribute value")
		}
		switch valueToks[0].tt {
		case cssparse.IdentToken:
			attr.Value = String(valueToks[0].data)
		case cssparse.StringToken:
			attr.Value = String(unquote(valueToks[0].data))
		default:
			return SelectorPart{}, 0, errAt(valueToks[0].offset, "expected an attribute value")
		}
		attr.Operator = op
	}

	return SelectorPart{Kind: SelectorAttribute, Value: Empty(), Attr: &attr}, end + 1, nil
}

func attributeOperator(t token) (AttributeOperator, bool) {
	switch {
	case t.isDelim('='):
		return AttrEquals, true
	case t.is(cssparse.IncludeMatchToken):
		return AttrIncludes, true
	case t.is(cssparse.DashMatchToken):
		return AttrDashMatch, true
	case t.is(cssparse.PrefixMatchToken):
		return AttrPrefixMatch, true
	case t.is(cssparse.SuffixMatchToken):
		return AttrSuffixMatch, true
	case t.is(cssparse.SubstringMatchToken):
		return AttrSubstringMatch, true
	default:
		return AttrExists, false
	}
}
