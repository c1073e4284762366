package css

import (
	"math"
	"strconv"
	"strings"
)

// ColorKind discriminates the variants of Color.
type ColorKind int

const (
	ColorEmpty ColorKind = iota
	ColorRGBA
	ColorCustom
	ColorModified
)

func (k ColorKind) String() string {
	switch k {
	case ColorRGBA:
		return "Rgba"
	case ColorCustom:
		return "Custom"
	case ColorModified:
		return "Modified"
	default:
		return "Empty"
	}
}

// ColorOp is the operation applied by a modified color.
type ColorOp int

const (
	ColorOpAdd ColorOp = iota
	ColorOpSubtract
	ColorOpMultiply
	ColorOpSet
	ColorOpMix
)

func (op ColorOp) String() string {
	switch op {
	case ColorOpAdd:
		return "Add"
	case ColorOpSubtract:
		return "Subtract"
	case ColorOpMultiply:
		return "Multiply"
	case ColorOpSet:
		return "Set"
	case ColorOpMix:
		return "Mix"
	default:
		return "Unknown"
	}
}

// ChannelSet carries the optional per-channel overrides of a set operation.
// A nil channel inherits from the base color.
type ChannelSet struct {
	R, G, B, A *uint8
}

// Color is a recursively composable color expression. Exactly the fields
// implied by Kind are meaningful. A modified color owns its Base and Other
// operands exclusively, forming a tree whose depth is bounded only by input
// nesting.
type Color struct {
	Kind ColorKind

	// ColorRGBA
	R, G, B, A uint8

	// ColorCustom: an unrecognized color-like function preserved verbatim.
	Source    string
	Arguments []string

	// ColorModified
	Base   *Color
	Op     ColorOp
	Other  *Color     // Add, Subtract, Multiply, Mix operand
	Amount float32    // Mix blend weight toward Other, in [0, 1]
	Set    ChannelSet // Set overrides
}

// EmptyColor returns the absent color.
func EmptyColor() Color {
	return Color{Kind: ColorEmpty}
}

// RGBA returns a fully resolved channel color.
func RGBA(r, g, b, a uint8) Color {
	return Color{Kind: ColorRGBA, R: r, G: g, B: b, A: a}
}

// CustomColor returns a passthrough color for an unrecognized function,
// keeping its raw argument text for forward compatibility.
func CustomColor(source string, arguments []string) Color {
	return Color{Kind: ColorCustom, Source: source, Arguments: arguments}
}

// Modified returns base with a channel-wise arithmetic operation applied.
func Modified(base Color, op ColorOp, other Color) Color {
	return Color{Kind: ColorModified, Base: &base, Op: op, Other: &other}
}

// ModifiedSet returns base with individual channels overridden.
func ModifiedSet(base Color, set ChannelSet) Color {
	return Color{Kind: ColorModified, Base: &base, Op: ColorOpSet, Set: set}
}

// Mixed returns base linearly blended toward other by amount in [0, 1].
func Mixed(base, other Color, amount float32) Color {
	return Color{Kind: ColorModified, Base: &base, Op: ColorOpMix, Other: &other, Amount: amount}
}

// Clone returns a deep copy of the color, duplicating the operand tree so
// the copy owns its nodes exclusively.
func (c Color) Clone() Color {
	out := c
	if c.Base != nil {
		base := c.Base.Clone()
		out.Base = &base
	}
	if c.Other != nil {
		other := c.Other.Clone()
		out.Other = &other
	}
	out.Arguments = append([]string(nil), c.Arguments...)
	out.Set = ChannelSet{
		R: cloneChannel(c.Set.R),
		G: cloneChannel(c.Set.G),
		B: cloneChannel(c.Set.B),
		A: cloneChannel(c.Set.A),
	}
	return out
}

func cloneChannel(v *uint8) *uint8 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// namedColors maps CSS color names to resolved channel values.
var namedColors = map[string]Color{
	"black":   RGBA(0, 0, 0, 255),
	"silver":  RGBA(192, 192, 192, 255),
	"gray":    RGBA(128, 128, 128, 255),
	"grey":    RGBA(128, 128, 128, 255),
	"white":   RGBA(255, 255, 255, 255),
	"maroon":  RGBA(128, 0, 0, 255),
	"red":     RGBA(255, 0, 0, 255),
	"purple":  RGBA(128, 0, 128, 255),
	"fuchsia": RGBA(255, 0, 255, 255),
	"green":   RGBA(0, 128, 0, 255),
	"lime":    RGBA(0, 255, 0, 255),
	"olive":   RGBA(128, 128, 0, 255),
	"yellow":  RGBA(255, 255, 0, 255),
	"navy":    RGBA(0, 0, 128, 255),
	"blue":    RGBA(0, 0, 255, 255),
	"teal":    RGBA(0, 128, 128, 255),
	"aqua":    RGBA(0, 255, 255, 255),

	"aliceblue":            RGBA(240, 248, 255, 255),
	"antiquewhite":         RGBA(250, 235, 215, 255),
	"aquamarine":           RGBA(127, 255, 212, 255),
	"azure":                RGBA(240, 255, 255, 255),
	"beige":                RGBA(245, 245, 220, 255),
	"bisque":               RGBA(255, 228, 196, 255),
	"blanchedalmond":       RGBA(255, 235, 205, 255),
	"blueviolet":           RGBA(138, 43, 226, 255),
	"brown":                RGBA(165, 42, 42, 255),
	"burlywood":            RGBA(222, 184, 135, 255),
	"cadetblue":            RGBA(95, 158, 160, 255),
	"chartreuse":           RGBA(127, 255, 0, 255),
	"chocolate":            RGBA(210, 105, 30, 255),
	"coral":                RGBA(255, 127, 80, 255),
	"cornflowerblue":       RGBA(100, 149, 237, 255),
	"cornsilk":             RGBA(255, 248, 220, 255),
	"crimson":              RGBA(220, 20, 60, 255),
	"cyan":                 RGBA(0, 255, 255, 255),
	"darkblue":             RGBA(0, 0, 139, 255),
	"darkcyan":             RGBA(0, 139, 139, 255),
	"darkgoldenrod":        RGBA(184, 134, 11, 255),
	"darkgray":             RGBA(169, 169, 169, 255),
	"darkgrey":             RGBA(169, 169, 169, 255),
	"darkgreen":            RGBA(0, 100, 0, 255),
	"darkkhaki":            RGBA(189, 183, 107, 255),
	"darkmagenta":          RGBA(139, 0, 139, 255),
	"darkolivegreen":       RGBA(85, 107, 47, 255),
	"darkorange":           RGBA(255, 140, 0, 255),
	"darkorchid":           RGBA(153, 50, 204, 255),
	"darkred":              RGBA(139, 0, 0, 255),
	"darksalmon":           RGBA(233, 150, 122, 255),
	"darkseagreen":         RGBA(143, 188, 143, 255),
	"darkslateblue":        RGBA(72, 61, 139, 255),
	"darkslategray":        RGBA(47, 79, 79, 255),
	"darkslategrey":        RGBA(47, 79, 79, 255),
	"darkturquoise":        RGBA(0, 206, 209, 255),
	"darkviolet":           RGBA(148, 0, 211, 255),
	"deeppink":             RGBA(255, 20, 147, 255),
	"deepskyblue":          RGBA(0, 191, 255, 255),
	"dimgray":              RGBA(105, 105, 105, 255),
	"dimgrey":              RGBA(105, 105, 105, 255),
	"dodgerblue":           RGBA(30, 144, 255, 255),
	"firebrick":            RGBA(178, 34, 34, 255),
	"floralwhite":          RGBA(255, 250, 240, 255),
	"forestgreen":          RGBA(34, 139, 34, 255),
	"gainsboro":            RGBA(220, 220, 220, 255),
	"ghostwhite":           RGBA(248, 248, 255, 255),
	"gold":                 RGBA(255, 215, 0, 255),
	"goldenrod":            RGBA(218, 165, 32, 255),
	"greenyellow":          RGBA(173, 255, 47, 255),
	"honeydew":             RGBA(240, 255, 240, 255),
	"hotpink":              RGBA(255, 105, 180, 255),
	"indianred":            RGBA(205, 92, 92, 255),
	"indigo":               RGBA(75, 0, 130, 255),
	"ivory":                RGBA(255, 255, 240, 255),
	"khaki":                RGBA(240, 230, 140, 255),
	"lavender":             RGBA(230, 230, 250, 255),
	"lavenderblush":        RGBA(255, 240, 245, 255),
	"lawngreen":            RGBA(124, 252, 0, 255),
	"lemonchiffon":         RGBA(255, 250, 205, 255),
	"lightblue":            RGBA(173, 216, 230, 255),
	"lightcoral":           RGBA(240, 128, 128, 255),
	"lightcyan":            RGBA(224, 255, 255, 255),
	"lightgoldenrodyellow": RGBA(250, 250, 210, 255),
	"lightgray":            RGBA(211, 211, 211, 255),
	"lightgrey":            RGBA(211, 211, 211, 255),
	"lightgreen":           RGBA(144, 238, 144, 255),
	"lightpink":            RGBA(255, 182, 193, 255),
	"lightsalmon":          RGBA(255, 160, 122, 255),
	"lightseagreen":        RGBA(32, 178, 170, 255),
	"lightskyblue":         RGBA(135, 206, 250, 255),
	"lightslategray":       RGBA(119, 136, 153, 255),
	"lightslategrey":       RGBA(119, 136, 153, 255),
	"lightsteelblue":       RGBA(176, 196, 222, 255),
	"lightyellow":          RGBA(255, 255, 224, 255),
	"limegreen":            RGBA(50, 205, 50, 255),
	"linen":                RGBA(250, 240, 230, 255),
	"magenta":              RGBA(255, 0, 255, 255),
	"mediumaquamarine":     RGBA(102, 205, 170, 255),
	"mediumblue":           RGBA(0, 0, 205, 255),
	"mediumorchid":         RGBA(186, 85, 211, 255),
	"mediumpurple":         RGBA(147, 112, 219, 255),
	"mediumseagreen":       RGBA(60, 179, 113, 255),
	"mediumslateblue":      RGBA(123, 104, 238, 255),
	"mediumspringgreen":    RGBA(0, 250, 154, 255),
	"mediumturquoise":      RGBA(72, 209, 204, 255),
	"mediumvioletred":      RGBA(199, 21, 133, 255),
	"midnightblue":         RGBA(25, 25, 112, 255),
	"mintcream":            RGBA(245, 255, 250, 255),
	"mistyrose":            RGBA(255, 228, 225, 255),
	"moccasin":             RGBA(255, 228, 181, 255),
	"navajowhite":          RGBA(255, 222, 173, 255),
	"oldlace":              RGBA(253, 245, 230, 255),
	"olivedrab":            RGBA(107, 142, 35, 255),
	"orange":               RGBA(255, 165, 0, 255),
	"orangered":            RGBA(255, 69, 0, 255),
	"orchid":               RGBA(218, 112, 214, 255),
	"palegoldenrod":        RGBA(238, 232, 170, 255),
	"palegreen":            RGBA(152, 251, 152, 255),
	"paleturquoise":        RGBA(175, 238, 238, 255),
	"palevioletred":        RGBA(219, 112, 147, 255),
	"papayawhip":           RGBA(255, 239, 213, 255),
	"peachpuff":            RGBA(255, 218, 185, 255),
	"peru":                 RGBA(205, 133, 63, 255),
	"pink":                 RGBA(255, 192, 203, 255),
	"plum":                 RGBA(221, 160, 221, 255),
	"powderblue":           RGBA(176, 224, 230, 255),
	"rebeccapurple":        RGBA(102, 51, 153, 255),
	"rosybrown":            RGBA(188, 143, 143, 255),
	"royalblue":            RGBA(65, 105, 225, 255),
	"saddlebrown":          RGBA(139, 69, 19, 255),
	"salmon":               RGBA(250, 128, 114, 255),
	"sandybrown":           RGBA(244, 164, 96, 255),
	"seagreen":             RGBA(46, 139, 87, 255),
	"seashell":             RGBA(255, 245, 238, 255),
	"sienna":               RGBA(160, 82, 45, 255),
	"skyblue":              RGBA(135, 206, 235, 255),
	"slateblue":            RGBA(106, 90, 205, 255),
	"slategray":            RGBA(112, 128, 144, 255),
	"slategrey":            RGBA(112, 128, 144, 255),
	"snow":                 RGBA(255, 250, 250, 255),
	"springgreen":          RGBA(0, 255, 127, 255),
	"steelblue":            RGBA(70, 130, 180, 255),
	"tan":                  RGBA(210, 180, 140, 255),
	"thistle":              RGBA(216, 191, 216, 255),
	"tomato":               RGBA(255, 99, 71, 255),
	"turquoise":            RGBA(64, 224, 208, 255),
	"violet":               RGBA(238, 130, 238, 255),
	"wheat":                RGBA(245, 222, 179, 255),
	"whitesmoke":           RGBA(245, 245, 245, 255),
	"yellowgreen":          RGBA(154, 205, 50, 255),

	"transparent": RGBA(0, 0, 0, 0),
}

// NamedColor resolves a CSS color name (case-insensitive).
func NamedColor(name string) (Color, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	return c, ok
}

// ParseHexColor parses a hash color literal with or without the leading '#'.
// Accepted digit counts: 3 (rgb), 4 (rgba), 6 (rrggbb) and 8 (rrggbbaa).
func ParseHexColor(s string) (Color, bool) {
	s = strings.TrimPrefix(s, "#")

	hex := func(sub string) (uint8, bool) {
		v, err := strconv.ParseUint(sub, 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(v), true
	}
	short := func(sub string) (uint8, bool) {
		v, ok := hex(sub)
		if !ok {
			return 0, false
		}
		return v<<4 | v, true
	}

	var r, g, b, a uint8
	var ok [4]bool
	a, ok[3] = 255, true

	switch len(s) {
	case 3:
		r, ok[0] = short(s[0:1])
		g, ok[1] = short(s[1:2])
		b, ok[2] = short(s[2:3])
	case 4:
		r, ok[0] = short(s[0:1])
		g, ok[1] = short(s[1:2])
		b, ok[2] = short(s[2:3])
		a, ok[3] = short(s[3:4])
	case 6:
		r, ok[0] = hex(s[0:2])
		g, ok[1] = hex(s[2:4])
		b, ok[2] = hex(s[4:6])
	case 8:
		r, ok[0] = hex(s[0:2])
		g, ok[1] = hex(s[2:4])
		b, ok[2] = hex(s[4:6])
		a, ok[3] = hex(s[6:8])
	default:
		return Color{}, false
	}

	if !ok[0] || !ok[1] || !ok[2] || !ok[3] {
		return Color{}, false
	}
	return RGBA(r, g, b, a), true
}

// clampChannel converts a unit float channel to its byte value.
func clampChannel(v float32) uint8 {
	return uint8(math.Min(math.Max(float64(v)*255.0, 0), 255))
}

// hwbToRGB converts hue (degrees), whiteness and blackness (unit floats)
// plus alpha to a resolved channel color.
func hwbToRGB(h, w, b, a float32) Color {
	if w+b >= 1 {
		gray := clampChannel(w / (w + b))
		return RGBA(gray, gray, gray, clampChannel(a))
	}
	pure := hslToRGB(h, 1, 0.5, 1)
	apply := func(c uint8) uint8 {
		return clampChannel(float32(c)/255*(1-w-b) + w)
	}
	return RGBA(apply(pure.R), apply(pure.G), apply(pure.B), clampChannel(a))
}

// hslToRGB converts hue (degrees), saturation and lightness (unit floats)
// plus alpha to a resolved channel color.
func hslToRGB(h, s, l, a float32) Color {
	h = float32(math.Mod(float64(h), 360))
	if h < 0 {
		h += 360
	}

	c := (1 - float32(math.Abs(float64(2*l-1)))) * s
	x := c * (1 - float32(math.Abs(math.Mod(float64(h)/60, 2)-1)))
	m := l - c/2

	var r, g, b float32
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBA(clampChannel(r+m), clampChannel(g+m), clampChannel(b+m), clampChannel(a))
}
