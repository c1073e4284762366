// Package css parses CSS-like stylesheet text into a structured, typed rule
// model: selectors, declarations and a small typed value algebra. It does not
// cascade, match or render - it only parses and represents.
package css

import "fmt"

// Unit is the unit suffix of a Dimension.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitUnsupported
	UnitNumber
	UnitPx
	UnitEm
	UnitRem
	UnitPt
	UnitPercent
	UnitDeg
	UnitRad
	UnitS
	UnitMs
)

// ParseUnit maps a unit suffix to a Unit. Units that are valid CSS but not
// supported by the engine map to UnitUnsupported, everything else to
// UnitUnknown.
func ParseUnit(s string) Unit {
	switch s {
	case "px":
		return UnitPx
	case "em":
		return UnitEm
	case "rem":
		return UnitRem
	case "pt":
		return UnitPt
	case "%":
		return UnitPercent
	case "deg":
		return UnitDeg
	case "rad":
		return UnitRad
	case "s":
		return UnitS
	case "ms":
		return UnitMs
	case "mm", "cm", "Q", "in", "pc", "vh", "vw", "lh", "rlh", "grad", "turn":
		return UnitUnsupported
	default:
		return UnitUnknown
	}
}

func (u Unit) String() string {
	switch u {
	case UnitUnsupported:
		return "unsupported"
	case UnitNumber:
		return "number"
	case UnitPx:
		return "px"
	case UnitEm:
		return "em"
	case UnitRem:
		return "rem"
	case UnitPt:
		return "pt"
	case UnitPercent:
		return "%"
	case UnitDeg:
		return "deg"
	case UnitRad:
		return "rad"
	case UnitS:
		return "s"
	case UnitMs:
		return "ms"
	default:
		return "unknown"
	}
}

// Dimension is a magnitude with a unit, e.g. "10px" or "50%".
type Dimension struct {
	Value float32
	Unit  Unit
}

// Px returns a pixel dimension.
func Px(value float32) Dimension {
	return Dimension{Value: value, Unit: UnitPx}
}

func (d Dimension) IsNumber() bool {
	return d.Unit == UnitNumber
}

func (d Dimension) IsLength() bool {
	switch d.Unit {
	case UnitPx, UnitEm, UnitRem, UnitPt:
		return true
	default:
		return false
	}
}

func (d Dimension) IsPercent() bool {
	return d.Unit == UnitPercent
}

func (d Dimension) IsAngle() bool {
	return d.Unit == UnitDeg || d.Unit == UnitRad
}

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueString
	ValueInteger
	ValueDimension
	ValueColor
	ValueURL
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "String"
	case ValueInteger:
		return "Integer"
	case ValueDimension:
		return "Dimension"
	case ValueColor:
		return "Color"
	case ValueURL:
		return "Url"
	default:
		return "Empty"
	}
}

// Value is one parsed declaration value. Exactly the fields implied by Kind
// are meaningful; every variant owns its data and holds no reference into the
// source text.
type Value struct {
	Kind ValueKind
	Text string    // ValueString, ValueURL
	Int  int       // ValueInteger
	Dim  Dimension // ValueDimension
	Col  Color     // ValueColor
}

// Empty returns the absent value.
func Empty() Value {
	return Value{Kind: ValueEmpty}
}

// String returns an identifier or quoted-text value.
func String(s string) Value {
	return Value{Kind: ValueString, Text: s}
}

// Integer returns a whole-number value.
func Integer(i int) Value {
	return Value{Kind: ValueInteger, Int: i}
}

// Dim returns a dimension value.
func Dim(d Dimension) Value {
	return Value{Kind: ValueDimension, Dim: d}
}

// Number returns a unitless numeric value.
func Number(v float32) Value {
	return Value{Kind: ValueDimension, Dim: Dimension{Value: v, Unit: UnitNumber}}
}

// Col returns a color value.
func Col(c Color) Value {
	return Value{Kind: ValueColor, Col: c}
}

// URL returns a url(...) value with its raw argument text.
func URL(u string) Value {
	return Value{Kind: ValueURL, Text: u}
}

// Magnitude returns the bare numeric magnitude of a Dimension or Integer
// value, for numeric contexts that do not care about the unit.
func (v Value) Magnitude() float32 {
	switch v.Kind {
	case ValueDimension:
		return v.Dim.Value
	case ValueInteger:
		return float32(v.Int)
	default:
		return 0
	}
}

// AttributeOperator is the comparison of an attribute selector.
type AttributeOperator int

const (
	AttrExists AttributeOperator = iota
	AttrEquals
	AttrIncludes
	AttrDashMatch
	AttrPrefixMatch
	AttrSuffixMatch
	AttrSubstringMatch
)

func (op AttributeOperator) String() string {
	switch op {
	case AttrEquals:
		return "="
	case AttrIncludes:
		return "~="
	case AttrDashMatch:
		return "|="
	case AttrPrefixMatch:
		return "^="
	case AttrSuffixMatch:
		return "$="
	case AttrSubstringMatch:
		return "*="
	default:
		return "exists"
	}
}

// AttributeMatch is the payload of an attribute selector part.
type AttributeMatch struct {
	Name     string
	Operator AttributeOperator
	Value    Value
}

// SelectorKind discriminates the parts of a selector chain.
type SelectorKind int

const (
	SelectorUnknown SelectorKind = iota
	SelectorAnyElement
	SelectorType
	SelectorClass
	SelectorID
	SelectorAttribute
	SelectorRelativeParent
	SelectorPseudoClass
	SelectorDocumentRoot
	SelectorDescendant
	SelectorChild
)

func (k SelectorKind) String() string {
	switch k {
	case SelectorAnyElement:
		return "AnyElement"
	case SelectorType:
		return "Type"
	case SelectorClass:
		return "Class"
	case SelectorID:
		return "Id"
	case SelectorAttribute:
		return "Attribute"
	case SelectorRelativeParent:
		return "RelativeParent"
	case SelectorPseudoClass:
		return "PseudoClass"
	case SelectorDocumentRoot:
		return "DocumentRoot"
	case SelectorDescendant:
		return "DescendantCombinator"
	case SelectorChild:
		return "ChildCombinator"
	default:
		return "Unknown"
	}
}

// IsCombinator reports whether the kind expresses a structural relation
// between adjacent compound selectors rather than a simple selector.
func (k SelectorKind) IsCombinator() bool {
	return k == SelectorDescendant || k == SelectorChild
}

// SelectorPart is one element of a selector chain. Attr is populated iff
// Kind is SelectorAttribute; combinator parts carry no value.
type SelectorPart struct {
	Kind  SelectorKind
	Value Value
	Attr  *AttributeMatch
}

// Part returns a selector part carrying a literal value.
func Part(kind SelectorKind, value Value) SelectorPart {
	return SelectorPart{Kind: kind, Value: value}
}

// EmptyPart returns a selector part without a value (combinators, wildcards).
func EmptyPart(kind SelectorKind) SelectorPart {
	return SelectorPart{Kind: kind, Value: Empty()}
}

// Selector is an ordered chain of parts in left-to-right source order,
// compound selectors separated by combinator parts. It is a flat sequence,
// not a tree: the engine does not match selectors against anything.
type Selector struct {
	Parts []SelectorPart
}

// Property is one parsed declaration: a verbatim name and one or more values
// in source order. Multi-entry Values represents shorthand declarations.
type Property struct {
	Name   string
	Values []Value
}

// Rule pairs exactly one selector with its declarations. A source rule with
// a comma-separated selector list expands into one Rule per selector at
// parse time.
type Rule struct {
	Selector   Selector
	Properties []Property
}

// Error is one located, non-fatal parse diagnostic. Line and Column are
// 1-based; both are 0 when the error cannot be localized (for example a file
// that could not be read).
type Error struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("In file %q at line %d column %d: %s", e.File, e.Line, e.Column, e.Message)
}
