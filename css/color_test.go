package css_test

import (
	"strings"
	"testing"

	"cssp/css"
)

// parseColor parses a single declaration value that must resolve to a color.
func parseColor(t *testing.T, expr string) css.Color {
	t.Helper()
	v := singleValue(t, expr)
	if v.Kind != css.ValueColor {
		t.Fatalf("expected %q to parse as a color, got %s", expr, v.Kind)
	}
	return v.Col
}

func expectRGBA(t *testing.T, c css.Color, r, g, b, a uint8) {
	t.Helper()
	if c.Kind != css.ColorRGBA {
		t.Fatalf("expected a channel color, got %s", c)
	}
	if c.R != r || c.G != g || c.B != b || c.A != a {
		t.Errorf("expected rgba(%d, %d, %d, %d), got %s", r, g, b, a, c)
	}
}

func TestColor_Hex(t *testing.T) {
	expectRGBA(t, parseColor(t, "#ff0000"), 255, 0, 0, 255)
	expectRGBA(t, parseColor(t, "#f00"), 255, 0, 0, 255)
	expectRGBA(t, parseColor(t, "#f00a"), 255, 0, 0, 170)
	expectRGBA(t, parseColor(t, "#80808080"), 128, 128, 128, 128)
}

func TestColor_Named(t *testing.T) {
	expectRGBA(t, parseColor(t, "black"), 0, 0, 0, 255)
	expectRGBA(t, parseColor(t, "White"), 255, 255, 255, 255)
	expectRGBA(t, parseColor(t, "rebeccapurple"), 102, 51, 153, 255)
	expectRGBA(t, parseColor(t, "transparent"), 0, 0, 0, 0)
}

func TestColor_RGBFunctions(t *testing.T) {
	expectRGBA(t, parseColor(t, "rgb(255, 0, 0)"), 255, 0, 0, 255)
	expectRGBA(t, parseColor(t, "rgb(100%, 0%, 50%)"), 255, 0, 127, 255)
	// Alpha truncates toward zero.
	expectRGBA(t, parseColor(t, "rgba(255, 0, 255, 0.25)"), 255, 0, 255, 63)
	expectRGBA(t, parseColor(t, "rgb(255 0 0 / 0.5)"), 255, 0, 0, 127)
}

func TestColor_HSL(t *testing.T) {
	expectRGBA(t, parseColor(t, "hsl(120, 50%, 50%)"), 63, 191, 63, 255)
	expectRGBA(t, parseColor(t, "hsl(0, 100%, 50%)"), 255, 0, 0, 255)
	expectRGBA(t, parseColor(t, "hsla(240, 100%, 50%, 0.5)"), 0, 0, 255, 127)
}

func TestColor_HWB(t *testing.T) {
	expectRGBA(t, parseColor(t, "hwb(0, 0%, 0%)"), 255, 0, 0, 255)
	// Whiteness and blackness summing to one yields gray.
	expectRGBA(t, parseColor(t, "hwb(120, 50%, 50%)"), 127, 127, 127, 255)
}

func TestColor_Mix(t *testing.T) {
	c := parseColor(t, "mix(black, white, 0.5)")
	if c.Kind != css.ColorModified || c.Op != css.ColorOpMix {
		t.Fatalf("expected a mix color, got %s", c)
	}
	expectRGBA(t, *c.Base, 0, 0, 0, 255)
	expectRGBA(t, *c.Other, 255, 255, 255, 255)
	if c.Amount != 0.5 {
		t.Errorf("expected amount 0.5, got %v", c.Amount)
	}
}

func TestColor_MixNested(t *testing.T) {
	c := parseColor(t, "mix(mix(black, white, 0.25), red, 0.75)")
	if c.Kind != css.ColorModified || c.Op != css.ColorOpMix {
		t.Fatalf("expected a mix color, got %s", c)
	}
	inner := c.Base
	if inner.Kind != css.ColorModified || inner.Op != css.ColorOpMix {
		t.Fatalf("expected a nested mix as base, got %s", inner)
	}
	expectRGBA(t, *c.Other, 255, 0, 0, 255)
}

func TestColor_ModifyArithmetic(t *testing.T) {
	ops := []struct {
		expr string
		op   css.ColorOp
	}{
		{"modify-color(red add blue)", css.ColorOpAdd},
		{"modify-color(red subtract blue)", css.ColorOpSubtract},
		{"modify-color(red multiply blue)", css.ColorOpMultiply},
	}
	for _, c := range ops {
		col := parseColor(t, c.expr)
		if col.Kind != css.ColorModified || col.Op != c.op {
			t.Errorf("%q: expected op %s, got %s", c.expr, c.op, col)
			continue
		}
		expectRGBA(t, *col.Base, 255, 0, 0, 255)
		expectRGBA(t, *col.Other, 0, 0, 255, 255)
	}
}

func TestColor_ModifySetAlpha(t *testing.T) {
	c := parseColor(t, "modify-color(black set-alpha 0.5)")
	if c.Kind != css.ColorModified || c.Op != css.ColorOpSet {
		t.Fatalf("expected a set color, got %s", c)
	}
	if c.Set.A == nil || *c.Set.A != 127 {
		t.Fatalf("expected alpha override 127, got %s", c)
	}
	if c.Set.R != nil || c.Set.G != nil || c.Set.B != nil {
		t.Error("expected only the alpha channel to be overridden")
	}
}

func TestColor_ModifySetChannels(t *testing.T) {
	c := parseColor(t, "modify-color(black set-red 1 set-blue 0.25)")
	if c.Kind != css.ColorModified || c.Op != css.ColorOpSet {
		t.Fatalf("expected a set color, got %s", c)
	}
	if c.Set.R == nil || *c.Set.R != 255 {
		t.Errorf("expected red override 255, got %s", c)
	}
	if c.Set.B == nil || *c.Set.B != 63 {
		t.Errorf("expected blue override 63, got %s", c)
	}
	if c.Set.G != nil || c.Set.A != nil {
		t.Error("unexpected channel overrides")
	}
}

func TestColor_CustomColorFunction(t *testing.T) {
	c := parseColor(t, "custom-color('test', 'some', 'arguments')")
	if c.Kind != css.ColorCustom || c.Source != "test" {
		t.Fatalf("expected custom color with source 'test', got %s", c)
	}
	if len(c.Arguments) != 2 || c.Arguments[0] != "some" || c.Arguments[1] != "arguments" {
		t.Errorf("unexpected arguments: %v", c.Arguments)
	}
}

func TestColor_UnknownFunctionPassesThrough(t *testing.T) {
	// Unrecognized functions become custom colors without any diagnostic.
	sheet := parseSheet(t, `a { color: foo(1, 2, bar); }`)
	if errs := sheet.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	v := sheet.Rules()[0].Properties[0].Values[0]
	if v.Kind != css.ValueColor || v.Col.Kind != css.ColorCustom {
		t.Fatalf("expected an unknown function to pass through, got %s", v)
	}
	c := v.Col
	if c.Source != "foo" {
		t.Errorf("expected source 'foo', got %q", c.Source)
	}
	if len(c.Arguments) != 3 || c.Arguments[0] != "1" || c.Arguments[1] != "2" || c.Arguments[2] != "bar" {
		t.Errorf("unexpected arguments: %v", c.Arguments)
	}
}

func TestColor_NestingDepthLimit(t *testing.T) {
	expr := "black"
	for i := 0; i < 70; i++ {
		expr = "mix(" + expr + ", white, 0.5)"
	}
	sheet := parseSheet(t, "a { color: "+expr+"; }")
	errs := sheet.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "nesting depth") {
		t.Fatalf("expected a nesting depth diagnostic, got %d errors", len(errs))
	}
}

func TestColor_CloneIsDeep(t *testing.T) {
	c := parseColor(t, "modify-color(mix(black, white, 0.5) set-alpha 0.5)")
	clone := c.Clone()
	if clone.Base == c.Base {
		t.Error("clone shares base color storage")
	}
	if clone.Set.A == c.Set.A {
		t.Error("clone shares channel override storage")
	}
	*clone.Set.A = 9
	if *c.Set.A != 127 {
		t.Error("mutating the clone changed the original")
	}
}
