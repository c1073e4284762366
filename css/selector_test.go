package css_test

import (
	"reflect"
	"strings"
	"testing"

	"cssp/css"
)

// parseSelectorParts parses a rule with the given selector and returns the
// selector parts of the single resulting rule.
func parseSelectorParts(t *testing.T, selector string) []css.SelectorPart {
	t.Helper()
	sheet := parseSheet(t, selector+" { test: 1px }")
	if errs := sheet.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors parsing %q: %v", selector, errs)
	}
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected one rule for %q, got %d", selector, len(rules))
	}
	return rules[0].Selector.Parts
}

func expectParts(t *testing.T, selector string, want []css.SelectorPart) {
	t.Helper()
	got := parseSelectorParts(t, selector)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%q: expected %v, got %v", selector, want, got)
	}
}

func TestSelector_Simple(t *testing.T) {
	expectParts(t, "type", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
	})
	expectParts(t, ".class", []css.SelectorPart{
		css.Part(css.SelectorClass, css.String("class")),
	})
	expectParts(t, "#id", []css.SelectorPart{
		css.Part(css.SelectorID, css.String("id")),
	})
	expectParts(t, "*", []css.SelectorPart{
		css.EmptyPart(css.SelectorAnyElement),
	})
	expectParts(t, ":root", []css.SelectorPart{
		css.EmptyPart(css.SelectorDocumentRoot),
	})
}

func TestSelector_Compound(t *testing.T) {
	expectParts(t, "type.class#id", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
		css.Part(css.SelectorClass, css.String("class")),
		css.Part(css.SelectorID, css.String("id")),
	})
	expectParts(t, "type:hovered", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
		css.Part(css.SelectorPseudoClass, css.String("hovered")),
	})
	expectParts(t, "type::first-line", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
		css.Part(css.SelectorPseudoClass, css.String("first-line")),
	})
}

func TestSelector_Combinators(t *testing.T) {
	expectParts(t, "type .class", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
		css.EmptyPart(css.SelectorDescendant),
		css.Part(css.SelectorClass, css.String("class")),
	})
	expectParts(t, "type > .class", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
		css.EmptyPart(css.SelectorChild),
		css.Part(css.SelectorClass, css.String("class")),
	})
	expectParts(t, "type>.class", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("type")),
		css.EmptyPart(css.SelectorChild),
		css.Part(css.SelectorClass, css.String("class")),
	})
	expectParts(t, "a b c", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("a")),
		css.EmptyPart(css.SelectorDescendant),
		css.Part(css.SelectorType, css.String("b")),
		css.EmptyPart(css.SelectorDescendant),
		css.Part(css.SelectorType, css.String("c")),
	})
}

func TestSelector_CommentBetweenCompounds(t *testing.T) {
	// A dropped comment leaves two adjacent whitespace runs; they must
	// collapse into a single descendant combinator.
	expectParts(t, "a /* note */ b", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("a")),
		css.EmptyPart(css.SelectorDescendant),
		css.Part(css.SelectorType, css.String("b")),
	})
	expectParts(t, "a > /* note */ b", []css.SelectorPart{
		css.Part(css.SelectorType, css.String("a")),
		css.EmptyPart(css.SelectorChild),
		css.Part(css.SelectorType, css.String("b")),
	})
}

func TestSelector_Attributes(t *testing.T) {
	parts := parseSelectorParts(t, "[name]")
	if len(parts) != 1 || parts[0].Kind != css.SelectorAttribute {
		t.Fatalf("expected one attribute part, got %v", parts)
	}
	attr := parts[0].Attr
	if attr.Name != "name" || attr.Operator != css.AttrExists {
		t.Errorf("expected bare [name], got %v", attr)
	}

	checks := []struct {
		selector string
		op       css.AttributeOperator
		value    string
	}{
		{"[name=value]", css.AttrEquals, "value"},
		{"[name~='v w']", css.AttrIncludes, "v w"},
		{"[name|=en]", css.AttrDashMatch, "en"},
		{"[name^=pre]", css.AttrPrefixMatch, "pre"},
		{"[name$=post]", css.AttrSuffixMatch, "post"},
		{"[name*=mid]", css.AttrSubstringMatch, "mid"},
	}
	for _, c := range checks {
		parts := parseSelectorParts(t, c.selector)
		if len(parts) != 1 || parts[0].Attr == nil {
			t.Errorf("%q: expected one attribute part, got %v", c.selector, parts)
			continue
		}
		attr := parts[0].Attr
		if attr.Operator != c.op || attr.Value.Text != c.value {
			t.Errorf("%q: expected %s %q, got %s %q", c.selector, c.op, c.value, attr.Operator, attr.Value.Text)
		}
	}
}

func TestSelector_UnknownPartRecovery(t *testing.T) {
	// A stray token degrades to an unknown part; the chain keeps parsing.
	parts := parseSelectorParts(t, "a + b")
	want := []css.SelectorKind{
		css.SelectorType,
		css.SelectorDescendant,
		css.SelectorUnknown,
		css.SelectorDescendant,
		css.SelectorType,
	}
	got := make([]css.SelectorKind, len(parts))
	for i, p := range parts {
		got[i] = p.Kind
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected kinds %v, got %v", want, got)
	}
}

func TestSelector_TrailingCombinator(t *testing.T) {
	sheet := parseSheet(t, "a > { test: 1px }")
	errs := sheet.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "combinator") {
		t.Fatalf("expected a trailing-combinator diagnostic, got %v", errs)
	}
	if rules := sheet.Rules(); len(rules) != 0 {
		t.Errorf("expected the rule to be skipped, got %d", len(rules))
	}
}

func TestSelector_Combine(t *testing.T) {
	parent := css.Selector{Parts: []css.SelectorPart{
		css.Part(css.SelectorType, css.String("a")),
	}}
	child := css.Selector{Parts: []css.SelectorPart{
		css.EmptyPart(css.SelectorRelativeParent),
		css.Part(css.SelectorClass, css.String("active")),
	}}

	combined := css.Combine(child, parent)
	want := []css.SelectorPart{
		css.Part(css.SelectorType, css.String("a")),
		css.Part(css.SelectorClass, css.String("active")),
	}
	if !reflect.DeepEqual(combined.Parts, want) {
		t.Errorf("expected %v, got %v", want, combined.Parts)
	}

	// Without a parent reference the parent is appended.
	plain := css.Selector{Parts: []css.SelectorPart{
		css.Part(css.SelectorType, css.String("b")),
	}}
	combined = css.Combine(plain, parent)
	want = []css.SelectorPart{
		css.Part(css.SelectorType, css.String("b")),
		css.Part(css.SelectorType, css.String("a")),
	}
	if !reflect.DeepEqual(combined.Parts, want) {
		t.Errorf("expected %v, got %v", want, combined.Parts)
	}
}
