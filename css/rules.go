package css

import (
	"fmt"
	"strings"

	cssparse "github.com/tdewolff/parse/v2/css"
)

// parsedRule is one source rule block before selector-group and nesting
// expansion: the full selector list, the block's own declarations and any
// rules nested inside it.
type parsedRule struct {
	selectors  []Selector
	properties []Property
	nested     []parsedRule
}

// expand flattens a parsed rule into concrete rules: one per selector, each
// carrying its own copy of the declarations, followed by the expanded nested
// rules with their selectors resolved against this selector.
func (p parsedRule) expand() []Rule {
	var out []Rule
	for _, selector := range p.selectors {
		if len(selector.Parts) == 0 && len(p.properties) == 0 {
			continue
		}
		out = append(out, Rule{
			Selector:   selector.Clone(),
			Properties: cloneProperties(p.properties),
		})
		for _, nested := range p.nested {
			for _, inner := range nested.expand() {
				out = append(out, Rule{
					Selector:   Combine(inner.Selector, selector),
					Properties: inner.Properties,
				})
			}
		}
	}
	return out
}

// run is the state of parsing one source: its token stream, the origin label
// used in diagnostics, the property registry, and the callback invoked for
// @import rules.
type run struct {
	ts       *tokenStream
	file     string
	registry *Registry
	importFn func(name string)

	errors []Error
}

// errorf records one located diagnostic.
func (r *run) errorf(offset int, format string, args ...any) {
	line, col := r.ts.position(offset)
	r.errors = append(r.errors, Error{
		File:    r.file,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	})
}

// record converts a parse error into a located diagnostic.
func (r *run) record(err error) {
	if pe, ok := err.(*parseError); ok {
		r.errorf(pe.offset, "%s", pe.message)
		return
	}
	r.errors = append(r.errors, Error{File: r.file, Message: err.Error()})
}

// parseTopLevel consumes the whole source, returning the expanded rules.
// Malformed blocks record diagnostics and are skipped; parsing always
// continues to the end of input.
func (r *run) parseTopLevel() []Rule {
	var rules []Rule
	for {
		r.ts.skipWhitespace()
		if r.ts.eof() {
			break
		}

		t := r.ts.peek()
		if t.is(cssparse.AtKeywordToken) {
			r.parseAtRule()
			continue
		}
		if t.is(cssparse.SemicolonToken) {
			r.ts.next()
			continue
		}

		prelude := r.ts.collectUntil(func(t token) bool {
			return t.is(cssparse.LeftBraceToken) || t.is(cssparse.SemicolonToken)
		})

		if r.ts.eof() || !r.ts.peek().is(cssparse.LeftBraceToken) {
			r.errorf(t.offset, "expected '{' after selector")
			if !r.ts.eof() {
				r.ts.next() // stray ';'
			}
			continue
		}
		r.ts.next() // '{'

		selectors, err := parseSelectorList(trimWhitespace(prelude), false)
		if err != nil {
			r.record(err)
			r.skipBlock()
			continue
		}

		properties, nested := r.parseBlock()
		rule := parsedRule{selectors: selectors, properties: properties, nested: nested}
		rules = append(rules, rule.expand()...)
	}
	return rules
}

// parseBlock parses a declaration block after its opening brace, returning
// the declarations and nested rules. One bad declaration records a
// diagnostic and parsing resumes at the next ';' or '}'.
func (r *run) parseBlock() ([]Property, []parsedRule) {
	var properties []Property
	var nested []parsedRule

	for {
		r.ts.skipWhitespace()
		if r.ts.eof() {
			break
		}
		t := r.ts.peek()
		if t.is(cssparse.RightBraceToken) {
			r.ts.next()
			break
		}
		if t.is(cssparse.SemicolonToken) {
			r.ts.next()
			continue
		}
		if t.is(cssparse.AtKeywordToken) {
			r.errorf(t.offset, "unsupported @-rule %q inside a rule block", t.data)
			r.skipStatement()
			continue
		}

		segment := r.ts.collectUntil(func(t token) bool {
			return t.is(cssparse.SemicolonToken) || t.is(cssparse.LeftBraceToken) || t.is(cssparse.RightBraceToken)
		})

		if !r.ts.eof() && r.ts.peek().is(cssparse.LeftBraceToken) {
			r.ts.next() // '{'
			selectors, err := parseSelectorList(trimWhitespace(segment), true)
			if err != nil {
				r.record(err)
				r.skipBlock()
				continue
			}
			innerProps, innerNested := r.parseBlock()
			nested = append(nested, parsedRule{selectors: selectors, properties: innerProps, nested: innerNested})
			continue
		}

		prop, validationErr, err := parseDeclaration(segment, r.registry)
		if err != nil {
			r.record(err)
			continue
		}
		if validationErr != nil {
			r.record(validationErr)
		}
		properties = append(properties, prop)
	}
	return properties, nested
}

// parseAtRule handles a top-level at-rule: @import pulls in another source
// through the import callback, @property registers a property definition,
// anything else records a diagnostic and is skipped.
func (r *run) parseAtRule() {
	at := r.ts.next()
	name := strings.ToLower(strings.TrimPrefix(at.data, "@"))

	switch name {
	case "import":
		args := r.ts.collectUntil(func(t token) bool {
			return t.is(cssparse.SemicolonToken) || t.is(cssparse.LeftBraceToken)
		})
		if !r.ts.eof() && r.ts.peek().is(cssparse.SemicolonToken) {
			r.ts.next()
		}
		target, ok := importTarget(trimWhitespace(args))
		if !ok {
			r.errorf(at.offset, "expected a file name or url for @import")
			return
		}
		if r.importFn != nil {
			r.importFn(target)
		}

	case "property":
		r.parsePropertyDefinition(at.offset)

	default:
		r.errorf(at.offset, "unsupported @-rule %q", at.data)
		r.skipStatement()
	}
}

// importTarget extracts the file name from an @import prelude, accepting a
// quoted string or either url() form.
func importTarget(toks []token) (string, bool) {
	if len(toks) == 1 {
		switch toks[0].tt {
		case cssparse.StringToken:
			return unquote(toks[0].data), true
		case cssparse.URLToken:
			return unwrapURL(toks[0].data), true
		}
	}
	if len(toks) >= 2 && toks[0].is(cssparse.FunctionToken) && strings.EqualFold(toks[0].data, "url(") {
		if inner, ok := functionBody(toks); ok {
			inner = trimWhitespace(inner)
			if len(inner) == 1 && inner[0].is(cssparse.StringToken) {
				return unquote(inner[0].data), true
			}
		}
	}
	return "", false
}

// parsePropertyDefinition parses "@property <name> { ... }" and registers
// the definition. The name and a syntax descriptor are required.
func (r *run) parsePropertyDefinition(offset int) {
	r.ts.skipWhitespace()
	nameTok := r.ts.peek()
	if !nameTok.is(cssparse.IdentToken) && !nameTok.is(cssparse.CustomPropertyNameToken) {
		r.errorf(offset, "expected a property name after @property")
		r.skipStatement()
		return
	}
	r.ts.next()

	r.ts.skipWhitespace()
	if r.ts.eof() || !r.ts.peek().is(cssparse.LeftBraceToken) {
		r.errorf(nameTok.offset, "expected '{' after @property %s", nameTok.data)
		r.skipStatement()
		return
	}
	r.ts.next() // '{'

	def := Definition{Name: nameTok.data}
	haveSyntax := false

	for {
		r.ts.skipWhitespace()
		if r.ts.eof() {
			break
		}
		if r.ts.peek().is(cssparse.RightBraceToken) {
			r.ts.next()
			break
		}
		if r.ts.peek().is(cssparse.SemicolonToken) {
			r.ts.next()
			continue
		}

		segment := r.ts.collectUntil(func(t token) bool {
			return t.is(cssparse.SemicolonToken) || t.is(cssparse.RightBraceToken)
		})
		segment = trimWhitespace(segment)
		if len(segment) < 2 || !segment[0].is(cssparse.IdentToken) || !segment[1].is(cssparse.ColonToken) {
			r.errorf(segmentOffset(segment), "expected a descriptor declaration in @property %s", def.Name)
			continue
		}
		valueToks := trimWhitespace(segment[2:])

		switch strings.ToLower(segment[0].data) {
		case "syntax":
			if len(valueToks) != 1 || !valueToks[0].is(cssparse.StringToken) {
				r.errorf(segment[0].offset, "expected a string for property syntax")
				continue
			}
			syntax, err := ParseSyntax(unquote(valueToks[0].data))
			if err != nil {
				r.errorf(valueToks[0].offset, "invalid property syntax: %v", err)
				continue
			}
			def.Syntax = syntax
			haveSyntax = true

		case "inherits":
			if len(valueToks) != 1 || !valueToks[0].is(cssparse.IdentToken) {
				r.errorf(segment[0].offset, "unexpected value for inherits")
				continue
			}
			switch strings.ToLower(valueToks[0].data) {
			case "true":
				def.Inherit = true
			case "false":
				def.Inherit = false
			default:
				r.errorf(valueToks[0].offset, "unexpected value for inherits")
			}

		case "initial-value":
			values, list, err := parseComponentList(valueToks, r.registry)
			if err != nil {
				r.record(err)
				continue
			}
			if haveSyntax {
				if err := def.Syntax.Validate(values, list); err != nil {
					r.errorf(segment[0].offset, "initial value does not match syntax: %v", err)
					continue
				}
			}
			def.Initial = values
		}
	}

	if !haveSyntax {
		r.errorf(offset, "'syntax' is required for property definition %s", def.Name)
		return
	}
	if r.registry != nil {
		r.registry.Add(def)
	}
}

// skipBlock consumes tokens up to and including the matching closing brace,
// assuming the opening brace was already consumed.
func (r *run) skipBlock() {
	depth := 1
	for !r.ts.eof() {
		t := r.ts.next()
		switch t.tt {
		case cssparse.LeftBraceToken:
			depth++
		case cssparse.RightBraceToken:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipStatement consumes tokens through the next top-level ';', or through
// a whole block if a '{' comes first.
func (r *run) skipStatement() {
	for !r.ts.eof() {
		t := r.ts.next()
		switch t.tt {
		case cssparse.SemicolonToken:
			return
		case cssparse.LeftBraceToken:
			r.skipBlock()
			return
		}
	}
}
