package css

import (
	"fmt"
	"strconv"
	"strings"

	cssparse "github.com/tdewolff/parse/v2/css"
)

// maxColorDepth bounds the nesting of color expressions so that maliciously
// deep input cannot blow the stack.
const maxColorDepth = 64

// parseError is a located error produced while parsing a token segment. The
// offset is the byte position of the offending token in the source.
type parseError struct {
	offset  int
	message string
}

func (e *parseError) Error() string {
	return e.message
}

func errAt(offset int, format string, args ...any) error {
	return &parseError{offset: offset, message: fmt.Sprintf(format, args...)}
}

// parseComponentList parses a declaration's value tokens into a list of
// values, reporting how the list was separated in source. A single value
// yields ListNone; a top-level comma anywhere makes the whole list comma
// separated, otherwise values are space separated.
func parseComponentList(toks []token, reg *Registry) ([]Value, ListKind, error) {
	groups := splitTopLevel(toks, cssparse.CommaToken)
	commaSeparated := len(groups) > 1

	var values []Value
	for _, group := range groups {
		for _, component := range splitTopLevel(group, cssparse.WhitespaceToken) {
			vs, err := parseValueComponent(component, reg)
			if err != nil {
				return nil, ListNone, err
			}
			values = append(values, vs...)
		}
	}

	switch {
	case len(values) <= 1:
		return values, ListNone, nil
	case commaSeparated:
		return values, ListCommaSeparated, nil
	default:
		return values, ListSpaceSeparated, nil
	}
}

// parseValueComponent parses one whitespace-delimited component. Most
// components produce exactly one value; var() substitution can splice in
// several.
func parseValueComponent(toks []token, reg *Registry) ([]Value, error) {
	if len(toks) == 0 {
		return nil, errAt(0, "expected a value")
	}
	t := toks[0]

	if len(toks) == 1 {
		switch t.tt {
		case cssparse.NumberToken:
			return []Value{parseNumeric(t.data)}, nil
		case cssparse.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 32)
			if err != nil {
				return nil, errAt(t.offset, "invalid percentage %q", t.data)
			}
			return []Value{Dim(Dimension{Value: float32(v), Unit: UnitPercent})}, nil
		case cssparse.DimensionToken:
			num, suffix := splitDimension(t.data)
			unit := ParseUnit(suffix)
			if unit == UnitUnknown || unit == UnitUnsupported {
				return nil, errAt(t.offset, "invalid unit for dimension: %s", suffix)
			}
			v, err := strconv.ParseFloat(num, 32)
			if err != nil {
				return nil, errAt(t.offset, "invalid dimension %q", t.data)
			}
			return []Value{Dim(Dimension{Value: float32(v), Unit: unit})}, nil
		case cssparse.IdentToken:
			if c, ok := NamedColor(t.data); ok {
				return []Value{Col(c)}, nil
			}
			return []Value{String(t.data)}, nil
		case cssparse.StringToken:
			return []Value{String(unquote(t.data))}, nil
		case cssparse.HashToken:
			c, ok := ParseHexColor(t.data)
			if !ok {
				return nil, errAt(t.offset, "input could not be parsed as color")
			}
			return []Value{Col(c)}, nil
		case cssparse.URLToken:
			return []Value{URL(unwrapURL(t.data))}, nil
		}
		return nil, errAt(t.offset, "could not parse input")
	}

	if t.is(cssparse.FunctionToken) {
		inner, ok := functionBody(toks)
		if !ok {
			return nil, errAt(t.offset, "unterminated function %q", t.data)
		}
		name := strings.ToLower(strings.TrimSuffix(t.data, "("))
		switch name {
		case "url":
			arg := trimWhitespace(inner)
			if len(arg) != 1 || !arg[0].is(cssparse.StringToken) {
				return nil, errAt(t.offset, "expected a quoted url")
			}
			return []Value{URL(unquote(arg[0].data))}, nil
		case "var":
			return expandVar(t.offset, inner, reg)
		default:
			// Color functions, including unrecognized ones which pass
			// through as custom colors.
			c, err := parseColorFunction(name, t.offset, inner, 1)
			if err != nil {
				return nil, err
			}
			return []Value{Col(c)}, nil
		}
	}

	return nil, errAt(t.offset, "could not parse input")
}

// expandVar substitutes var(<name>, <fallback>?): a registered property
// yields its initial values, an unregistered one falls back to the values
// after the comma.
func expandVar(offset int, inner []token, reg *Registry) ([]Value, error) {
	parts := splitTopLevel(inner, cssparse.CommaToken)
	if len(parts) == 0 {
		return nil, errAt(offset, "expected a property name")
	}

	nameToks := parts[0]
	if len(nameToks) != 1 || !(nameToks[0].is(cssparse.IdentToken) || nameToks[0].is(cssparse.CustomPropertyNameToken)) {
		return nil, errAt(offset, "expected a property name")
	}
	name := nameToks[0].data

	if reg != nil {
		if def, ok := reg.Lookup(name); ok {
			return append([]Value(nil), def.Initial...), nil
		}
	}

	if len(parts) < 2 {
		return nil, errAt(offset, "unknown property %q and no fallback value", name)
	}
	var values []Value
	for _, group := range parts[1:] {
		for _, component := range splitTopLevel(group, cssparse.WhitespaceToken) {
			vs, err := parseValueComponent(component, reg)
			if err != nil {
				return nil, err
			}
			values = append(values, vs...)
		}
	}
	return values, nil
}

// parseColorTokens parses one component segment as a color expression.
func parseColorTokens(toks []token, depth int) (Color, error) {
	toks = trimWhitespace(toks)
	if len(toks) == 0 {
		return Color{}, errAt(0, "expected a color")
	}
	t := toks[0]

	if depth > maxColorDepth {
		return Color{}, errAt(t.offset, "color expression exceeds maximum nesting depth")
	}

	if len(toks) == 1 {
		switch t.tt {
		case cssparse.IdentToken:
			if c, ok := NamedColor(t.data); ok {
				return c, nil
			}
			return Color{}, errAt(t.offset, "unknown color name %q", t.data)
		case cssparse.HashToken:
			if c, ok := ParseHexColor(t.data); ok {
				return c, nil
			}
			return Color{}, errAt(t.offset, "invalid hex color %q", t.data)
		}
		return Color{}, errAt(t.offset, "input could not be parsed as color")
	}

	if t.is(cssparse.FunctionToken) {
		inner, ok := functionBody(toks)
		if !ok {
			return Color{}, errAt(t.offset, "unterminated function %q", t.data)
		}
		name := strings.ToLower(strings.TrimSuffix(t.data, "("))
		return parseColorFunction(name, t.offset, inner, depth)
	}

	return Color{}, errAt(t.offset, "input could not be parsed as color")
}

// parseColorFunction parses the body of a color-producing function call.
// Functions that are not recognized pass through as custom colors with their
// raw argument text preserved.
func parseColorFunction(name string, offset int, inner []token, depth int) (Color, error) {
	if depth > maxColorDepth {
		return Color{}, errAt(offset, "color expression exceeds maximum nesting depth")
	}
	args := splitTopLevel(inner, cssparse.CommaToken)

	switch name {
	case "rgb", "rgba":
		return parseRGBArgs(offset, inner, args)
	case "hsl", "hsla":
		return parseHSLArgs(offset, inner, args)
	case "hwb":
		return parseHWBArgs(offset, inner, args)

	case "mix":
		if len(args) != 3 {
			return Color{}, errAt(offset, "mix expects two colors and an amount")
		}
		first, err := parseColorTokens(args[0], depth+1)
		if err != nil {
			return Color{}, err
		}
		second, err := parseColorTokens(args[1], depth+1)
		if err != nil {
			return Color{}, err
		}
		amount, err := parseUnitInterval(args[2])
		if err != nil {
			return Color{}, err
		}
		return Mixed(first, second, amount), nil

	case "modify-color":
		return parseModifyColor(offset, inner, depth)

	case "custom-color":
		if len(args) == 0 {
			return Color{}, errAt(offset, "custom-color expects a source argument")
		}
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			if len(arg) == 1 && arg[0].is(cssparse.StringToken) {
				parts = append(parts, unquote(arg[0].data))
			} else {
				parts = append(parts, rawText(arg))
			}
		}
		return CustomColor(parts[0], parts[1:]), nil
	}

	arguments := make([]string, 0, len(args))
	for _, arg := range args {
		arguments = append(arguments, rawText(arg))
	}
	return CustomColor(name, arguments), nil
}

// parseModifyColor parses modify-color(<base> <op> ...): either a single
// arithmetic operation with a color operand, or one or more set-<channel>
// overrides.
func parseModifyColor(offset int, inner []token, depth int) (Color, error) {
	segments := splitTopLevel(trimWhitespace(inner), cssparse.WhitespaceToken)
	if len(segments) < 3 {
		return Color{}, errAt(offset, "modify-color expects a base color and an operation")
	}

	base, err := parseColorTokens(segments[0], depth+1)
	if err != nil {
		return Color{}, err
	}

	opTok := segments[1]
	if len(opTok) != 1 || !opTok[0].is(cssparse.IdentToken) {
		return Color{}, errAt(offset, "expected a color operation")
	}

	switch op := strings.ToLower(opTok[0].data); op {
	case "add", "subtract", "multiply":
		if len(segments) != 3 {
			return Color{}, errAt(offset, "%s expects exactly one color operand", op)
		}
		other, err := parseColorTokens(segments[2], depth+1)
		if err != nil {
			return Color{}, err
		}
		switch op {
		case "add":
			return Modified(base, ColorOpAdd, other), nil
		case "subtract":
			return Modified(base, ColorOpSubtract, other), nil
		default:
			return Modified(base, ColorOpMultiply, other), nil
		}
	}

	// set-<channel> <value> pairs
	var set ChannelSet
	for i := 1; i < len(segments); i += 2 {
		opToks := segments[i]
		if len(opToks) != 1 || !opToks[0].is(cssparse.IdentToken) {
			return Color{}, errAt(offset, "expected a set-channel operation")
		}
		if i+1 >= len(segments) {
			return Color{}, errAt(opToks[0].offset, "missing value for %s", opToks[0].data)
		}
		v, err := parseUnitInterval(segments[i+1])
		if err != nil {
			return Color{}, err
		}
		channel := clampChannel(v)
		switch strings.ToLower(opToks[0].data) {
		case "set-red":
			set.R = &channel
		case "set-green":
			set.G = &channel
		case "set-blue":
			set.B = &channel
		case "set-alpha":
			set.A = &channel
		default:
			return Color{}, errAt(opToks[0].offset, "unknown color operation %q", opToks[0].data)
		}
	}
	return ModifiedSet(base, set), nil
}

func parseRGBArgs(offset int, inner []token, args [][]token) (Color, error) {
	channels, alpha, err := colorArgs(offset, inner, args)
	if err != nil {
		return Color{}, err
	}
	if len(channels) != 3 {
		return Color{}, errAt(offset, "rgb expects three channel values")
	}

	parseChannel := func(t token) (uint8, error) {
		switch t.tt {
		case cssparse.NumberToken:
			v, err := strconv.ParseFloat(t.data, 32)
			if err != nil {
				return 0, errAt(t.offset, "invalid channel value %q", t.data)
			}
			return clampChannel(float32(v) / 255), nil
		case cssparse.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 32)
			if err != nil {
				return 0, errAt(t.offset, "invalid channel value %q", t.data)
			}
			return clampChannel(float32(v) / 100), nil
		}
		return 0, errAt(t.offset, "invalid channel value %q", t.data)
	}

	r, err := parseChannel(channels[0])
	if err != nil {
		return Color{}, err
	}
	g, err := parseChannel(channels[1])
	if err != nil {
		return Color{}, err
	}
	b, err := parseChannel(channels[2])
	if err != nil {
		return Color{}, err
	}
	return RGBA(r, g, b, alpha), nil
}

func parseHSLArgs(offset int, inner []token, args [][]token) (Color, error) {
	channels, alpha, err := colorArgs(offset, inner, args)
	if err != nil {
		return Color{}, err
	}
	if len(channels) != 3 {
		return Color{}, errAt(offset, "hsl expects hue, saturation and lightness")
	}
	h, err := parseHue(channels[0])
	if err != nil {
		return Color{}, err
	}
	s, err := parseUnitChannel(channels[1])
	if err != nil {
		return Color{}, err
	}
	l, err := parseUnitChannel(channels[2])
	if err != nil {
		return Color{}, err
	}
	return hslToRGB(h, s, l, float32(alpha)/255), nil
}

func parseHWBArgs(offset int, inner []token, args [][]token) (Color, error) {
	channels, alpha, err := colorArgs(offset, inner, args)
	if err != nil {
		return Color{}, err
	}
	if len(channels) != 3 {
		return Color{}, errAt(offset, "hwb expects hue, whiteness and blackness")
	}
	h, err := parseHue(channels[0])
	if err != nil {
		return Color{}, err
	}
	w, err := parseUnitChannel(channels[1])
	if err != nil {
		return Color{}, err
	}
	b, err := parseUnitChannel(channels[2])
	if err != nil {
		return Color{}, err
	}
	return hwbToRGB(h, w, b, float32(alpha)/255), nil
}

// colorArgs flattens legacy comma-separated and modern space-separated color
// function arguments into a channel token list plus a resolved alpha. The
// modern form carries its alpha after a '/' delimiter, the legacy form as a
// fourth comma argument.
func colorArgs(offset int, inner []token, args [][]token) ([]token, uint8, error) {
	var channels []token
	alpha := uint8(255)

	flat := args
	if len(args) == 1 {
		flat = nil
		for _, seg := range splitTopLevel(args[0], cssparse.WhitespaceToken) {
			flat = append(flat, seg)
		}
	}

	sawSlash := false
	for _, seg := range flat {
		for _, t := range seg {
			if t.is(cssparse.WhitespaceToken) {
				continue
			}
			if t.isDelim('/') {
				sawSlash = true
				continue
			}
			if sawSlash {
				a, err := parseAlphaToken(t)
				if err != nil {
					return nil, 0, err
				}
				alpha = a
				sawSlash = false
				continue
			}
			channels = append(channels, t)
		}
	}

	if len(channels) == 4 {
		a, err := parseAlphaToken(channels[3])
		if err != nil {
			return nil, 0, err
		}
		alpha = a
		channels = channels[:3]
	}
	if len(channels) == 0 {
		return nil, 0, errAt(offset, "expected color channel values")
	}
	return channels, alpha, nil
}

func parseAlphaToken(t token) (uint8, error) {
	switch t.tt {
	case cssparse.NumberToken:
		v, err := strconv.ParseFloat(t.data, 32)
		if err != nil {
			return 0, errAt(t.offset, "invalid alpha value %q", t.data)
		}
		return clampChannel(float32(v)), nil
	case cssparse.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 32)
		if err != nil {
			return 0, errAt(t.offset, "invalid alpha value %q", t.data)
		}
		return clampChannel(float32(v) / 100), nil
	}
	return 0, errAt(t.offset, "invalid alpha value %q", t.data)
}

// parseHue accepts a bare number or an angle dimension, returning degrees.
func parseHue(t token) (float32, error) {
	switch t.tt {
	case cssparse.NumberToken:
		v, err := strconv.ParseFloat(t.data, 32)
		if err != nil {
			return 0, errAt(t.offset, "invalid hue %q", t.data)
		}
		return float32(v), nil
	case cssparse.DimensionToken:
		num, suffix := splitDimension(t.data)
		v, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return 0, errAt(t.offset, "invalid hue %q", t.data)
		}
		switch ParseUnit(suffix) {
		case UnitDeg:
			return float32(v), nil
		case UnitRad:
			return float32(v * 180 / 3.141592653589793), nil
		}
		return 0, errAt(t.offset, "invalid hue unit %q", suffix)
	}
	return 0, errAt(t.offset, "invalid hue %q", t.data)
}

// parseUnitChannel accepts a percentage or a unit-interval number.
func parseUnitChannel(t token) (float32, error) {
	switch t.tt {
	case cssparse.NumberToken:
		v, err := strconv.ParseFloat(t.data, 32)
		if err == nil {
			return float32(v), nil
		}
	case cssparse.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(t.data, "%"), 32)
		if err == nil {
			return float32(v) / 100, nil
		}
	}
	return 0, errAt(t.offset, "invalid channel value %q", t.data)
}

// parseUnitInterval parses a single-token segment as a number or percentage
// in the unit interval.
func parseUnitInterval(toks []token) (float32, error) {
	toks = trimWhitespace(toks)
	if len(toks) != 1 {
		offset := 0
		if len(toks) > 0 {
			offset = toks[0].offset
		}
		return 0, errAt(offset, "expected a number or percentage")
	}
	return parseUnitChannel(toks[0])
}

// parseNumeric maps a number literal to Integer or unitless Number.
func parseNumeric(s string) Value {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.Atoi(s); err == nil {
			return Integer(i)
		}
	}
	v, _ := strconv.ParseFloat(s, 32)
	return Number(float32(v))
}

// splitDimension separates the numeric prefix of a dimension literal from
// its unit suffix.
func splitDimension(s string) (num, unit string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' {
			i++
			continue
		}
		if (c == 'e' || c == 'E') && i+1 < len(s) {
			n := s[i+1]
			if n >= '0' && n <= '9' || n == '+' || n == '-' {
				i += 2
				continue
			}
		}
		break
	}
	return s[:i], s[i:]
}

// functionBody returns the tokens between a function token and its matching
// closing parenthesis, which must be the segment's last token.
func functionBody(toks []token) ([]token, bool) {
	if len(toks) < 2 || !toks[0].is(cssparse.FunctionToken) || !toks[len(toks)-1].is(cssparse.RightParenthesisToken) {
		return nil, false
	}
	return toks[1 : len(toks)-1], true
}

// unquote strips matching single or double quotes from a string literal.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// unwrapURL strips the url( prefix, closing parenthesis and optional quotes
// from an unquoted url token.
func unwrapURL(s string) string {
	s = strings.TrimPrefix(s, "url(")
	s = strings.TrimSuffix(s, ")")
	return unquote(strings.TrimSpace(s))
}
