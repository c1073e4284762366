package css

import (
	"fmt"
	"strings"
	"unicode"
)

// DataType is one of the value shapes a property syntax descriptor can name.
type DataType int

const (
	DataLength DataType = iota
	DataNumber
	DataPercentage
	DataLengthPercentage
	DataString
	DataColor
	DataURL
	DataInteger
	DataAngle
	DataTime
	DataResolution
	DataTransformFunction
	DataCustomIdent
)

var dataTypeNames = []struct {
	name string
	typ  DataType
}{
	// Longest-prefix first so "length-percentage" wins over "length".
	{"length-percentage", DataLengthPercentage},
	{"length", DataLength},
	{"number", DataNumber},
	{"percentage", DataPercentage},
	{"string", DataString},
	{"color", DataColor},
	{"url", DataURL},
	{"integer", DataInteger},
	{"angle", DataAngle},
	{"time", DataTime},
	{"resolution", DataResolution},
	{"transform-function", DataTransformFunction},
	{"custom-ident", DataCustomIdent},
}

func (d DataType) String() string {
	for _, e := range dataTypeNames {
		if e.typ == d {
			return e.name
		}
	}
	return "unknown"
}

// componentKind discriminates syntax components.
type componentKind int

const (
	componentDataType componentKind = iota
	componentKeyword
	componentSpaceList
	componentCommaList
)

// Component is one element of a syntax expression: a data type, a literal
// keyword, or a space/comma separated list of a data type.
type Component struct {
	Kind    componentKind
	Type    DataType
	Keyword string
}

// Alternatives is a group of components of which one must match.
type Alternatives []Component

// SyntaxKind discriminates parsed property syntaxes.
type SyntaxKind int

const (
	SyntaxEmpty SyntaxKind = iota
	SyntaxUniversal
	SyntaxComponents
)

// Syntax is a parsed property syntax descriptor: either the universal "*"
// syntax accepting anything, or an ordered sequence of alternative groups
// that a declaration's value list must match in full.
type Syntax struct {
	Kind       SyntaxKind
	Components []Alternatives
}

// Universal returns the syntax accepting any value list.
func Universal() Syntax {
	return Syntax{Kind: SyntaxUniversal}
}

func isCustomIdentStart(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		return true
	case r == '·', r >= 'Í' && r <= '×', r >= 'Ø' && r <= 'ö',
		r >= 'ø' && r <= 'ͽ', r >= 'Ϳ' && r <= '῿',
		r == '‌', r == '‍', r == '‿', r == '⁀',
		r >= '⁰' && r <= '↏', r >= 'Ⰰ' && r <= '⿯',
		r >= '、' && r <= '퟿', r >= '豈' && r <= '﷏',
		r >= 'ﷰ' && r <= '�', r > '�':
		return true
	}
	return false
}

func isCustomIdent(r rune) bool {
	return isCustomIdentStart(r) || unicode.IsNumber(r) || r == '-'
}

// syntaxReader is a cursor over a descriptor string.
type syntaxReader struct {
	src string
	pos int
}

func (r *syntaxReader) eof() bool {
	return r.pos >= len(r.src)
}

func (r *syntaxReader) skipSpace() {
	for !r.eof() && (r.src[r.pos] == ' ' || r.src[r.pos] == '\t') {
		r.pos++
	}
}

func (r *syntaxReader) accept(c byte) bool {
	if !r.eof() && r.src[r.pos] == c {
		r.pos++
		return true
	}
	return false
}

// component reads one syntax component: <type>, <type>+, <type># or keyword.
func (r *syntaxReader) component() (Component, error) {
	r.skipSpace()
	if r.eof() {
		return Component{}, fmt.Errorf("unexpected end of syntax")
	}

	if r.accept('<') {
		rest := r.src[r.pos:]
		for _, e := range dataTypeNames {
			if strings.HasPrefix(rest, e.name) {
				r.pos += len(e.name)
				if !r.accept('>') {
					return Component{}, fmt.Errorf("missing '>' after data type %q", e.name)
				}
				c := Component{Kind: componentDataType, Type: e.typ}
				if r.accept('+') {
					c.Kind = componentSpaceList
				} else if r.accept('#') {
					c.Kind = componentCommaList
				}
				return c, nil
			}
		}
		return Component{}, fmt.Errorf("unknown data type at %q", rest)
	}

	// Keyword: custom-ident.
	start := r.pos
	for i, ch := range r.src[r.pos:] {
		if i == 0 {
			if !isCustomIdentStart(ch) {
				return Component{}, fmt.Errorf("unexpected character %q in syntax", string(ch))
			}
			continue
		}
		if !isCustomIdent(ch) {
			r.pos = start + i
			break
		}
	}
	if r.pos == start {
		r.pos = len(r.src)
	}
	return Component{Kind: componentKeyword, Keyword: r.src[start:r.pos]}, nil
}

// ParseSyntax parses a property syntax descriptor string: "*" for the
// universal syntax, or a space-separated sequence of components where each
// component may offer '|'-separated alternatives.
func ParseSyntax(input string) (Syntax, error) {
	r := &syntaxReader{src: strings.TrimSpace(input)}
	if r.src == "" {
		return Syntax{}, fmt.Errorf("empty property syntax")
	}
	if r.src == "*" {
		return Universal(), nil
	}

	var components []Alternatives
	for {
		r.skipSpace()
		if r.eof() {
			break
		}
		c, err := r.component()
		if err != nil {
			return Syntax{}, err
		}
		alts := Alternatives{c}
		for {
			r.skipSpace()
			if !r.accept('|') {
				break
			}
			c, err := r.component()
			if err != nil {
				return Syntax{}, err
			}
			alts = append(alts, c)
		}
		components = append(components, alts)
	}
	if len(components) == 0 {
		return Syntax{}, fmt.Errorf("empty property syntax")
	}
	return Syntax{Kind: SyntaxComponents, Components: components}, nil
}

// ListKind describes how a declaration's values were separated in source.
type ListKind int

const (
	ListNone ListKind = iota
	ListSpaceSeparated
	ListCommaSeparated
)

// matchDataType reports whether the first value matches the data type,
// returning the remaining values on success.
func matchDataType(d DataType, values []Value) ([]Value, bool) {
	if len(values) == 0 {
		return nil, false
	}
	v, rest := values[0], values[1:]
	switch d {
	case DataLength:
		return rest, v.Kind == ValueDimension && v.Dim.IsLength()
	case DataNumber:
		// Integer literals are numbers too.
		return rest, v.Kind == ValueInteger || (v.Kind == ValueDimension && v.Dim.IsNumber())
	case DataPercentage:
		return rest, v.Kind == ValueDimension && v.Dim.IsPercent()
	case DataLengthPercentage:
		return rest, v.Kind == ValueDimension && (v.Dim.IsLength() || v.Dim.IsPercent())
	case DataAngle:
		return rest, v.Kind == ValueDimension && v.Dim.IsAngle()
	case DataTime:
		return rest, v.Kind == ValueDimension && (v.Dim.Unit == UnitS || v.Dim.Unit == UnitMs)
	case DataString, DataCustomIdent:
		return rest, v.Kind == ValueString
	case DataColor:
		return rest, v.Kind == ValueColor
	case DataURL:
		return rest, v.Kind == ValueURL
	case DataInteger:
		return rest, v.Kind == ValueInteger
	default:
		return rest, false
	}
}

func matchComponent(c Component, values []Value, list ListKind) ([]Value, bool) {
	switch c.Kind {
	case componentDataType:
		return matchDataType(c.Type, values)
	case componentKeyword:
		if len(values) == 0 || values[0].Kind != ValueString || values[0].Text != c.Keyword {
			return nil, false
		}
		return values[1:], true
	case componentSpaceList, componentCommaList:
		if c.Kind == componentSpaceList && list == ListCommaSeparated {
			return nil, false
		}
		if c.Kind == componentCommaList && list == ListSpaceSeparated {
			return nil, false
		}
		rest := values
		for len(rest) > 0 {
			next, ok := matchDataType(c.Type, rest)
			if !ok {
				return nil, false
			}
			rest = next
		}
		return rest, true
	default:
		return nil, false
	}
}

// Validate checks a parsed value list against the syntax. The list argument
// describes how the values were separated in source, which discriminates
// space-separated from comma-separated list syntaxes.
func (s Syntax) Validate(values []Value, list ListKind) error {
	if s.Kind != SyntaxComponents {
		return nil
	}

	remaining := values
	for _, alts := range s.Components {
		if len(remaining) == 0 {
			return fmt.Errorf("expected additional values")
		}
		matched := false
		for _, c := range alts {
			if rest, ok := matchComponent(c, remaining, list); ok {
				remaining = rest
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("value %s does not match syntax component", remaining[0].Kind)
		}
	}
	if len(remaining) != 0 {
		return fmt.Errorf("received %d more value(s) than the syntax allows", len(remaining))
	}
	return nil
}
