package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"cssp/css"
)

// parseValues parses a single "test" declaration and returns its values,
// failing the test on any diagnostic.
func parseValues(t *testing.T, value string) []css.Value {
	t.Helper()
	sheet := parseSheet(t, "probe { test: "+value+"; }")
	if errs := sheet.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors parsing %q: %v", value, errs)
	}
	rules := sheet.Rules()
	if len(rules) != 1 || len(rules[0].Properties) != 1 {
		t.Fatalf("expected one declaration for %q, got %v", value, rules)
	}
	return rules[0].Properties[0].Values
}

func singleValue(t *testing.T, value string) css.Value {
	t.Helper()
	values := parseValues(t, value)
	if len(values) != 1 {
		t.Fatalf("expected one value for %q, got %d", value, len(values))
	}
	return values[0]
}

func TestValues_Dimensions(t *testing.T) {
	checks := []struct {
		input string
		value float32
		unit  css.Unit
	}{
		{"10px", 10, css.UnitPx},
		{"2em", 2, css.UnitEm},
		{"1.5rem", 1.5, css.UnitRem},
		{"12pt", 12, css.UnitPt},
		{"50%", 50, css.UnitPercent},
		{"90deg", 90, css.UnitDeg},
		{"300ms", 300, css.UnitMs},
		{"1.5s", 1.5, css.UnitS},
	}
	for _, c := range checks {
		v := singleValue(t, c.input)
		if v.Kind != css.ValueDimension {
			t.Errorf("%q: expected a dimension, got %s", c.input, v.Kind)
			continue
		}
		if v.Dim.Value != c.value || v.Dim.Unit != c.unit {
			t.Errorf("%q: expected %v %s, got %s", c.input, c.value, c.unit, v.Dim)
		}
	}
}

func TestValues_IntegerAndNumber(t *testing.T) {
	v := singleValue(t, "10")
	if v.Kind != css.ValueInteger || v.Int != 10 {
		t.Errorf("expected Integer(10), got %s", v)
	}

	v = singleValue(t, "-3")
	if v.Kind != css.ValueInteger || v.Int != -3 {
		t.Errorf("expected Integer(-3), got %s", v)
	}

	v = singleValue(t, "2.5")
	if v.Kind != css.ValueDimension || v.Dim.Unit != css.UnitNumber || v.Dim.Value != 2.5 {
		t.Errorf("expected unitless 2.5, got %s", v)
	}
}

func TestValues_StringsAndKeywords(t *testing.T) {
	v := singleValue(t, `'hello world'`)
	if v.Kind != css.ValueString || v.Text != "hello world" {
		t.Errorf("expected String(hello world), got %s", v)
	}

	v = singleValue(t, "solid")
	if v.Kind != css.ValueString || v.Text != "solid" {
		t.Errorf("expected the keyword to parse as a string, got %s", v)
	}
}

func TestValues_URL(t *testing.T) {
	v := singleValue(t, `url('img/cover.png')`)
	if v.Kind != css.ValueURL || v.Text != "img/cover.png" {
		t.Errorf("expected Url(img/cover.png), got %s", v)
	}

	v = singleValue(t, `url(img/cover.png)`)
	if v.Kind != css.ValueURL || v.Text != "img/cover.png" {
		t.Errorf("expected unquoted url to parse, got %s", v)
	}
}

func TestValues_MultipleComponents(t *testing.T) {
	values := parseValues(t, "1px solid red")
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	if values[0].Kind != css.ValueDimension || values[0].Dim.Unit != css.UnitPx {
		t.Errorf("expected 1px, got %s", values[0])
	}
	if values[1].Kind != css.ValueString || values[1].Text != "solid" {
		t.Errorf("expected 'solid', got %s", values[1])
	}
	if values[2].Kind != css.ValueColor {
		t.Errorf("expected a color, got %s", values[2])
	}
}

func TestValues_UnsupportedUnit(t *testing.T) {
	for _, input := range []string{"10vh", "10cm", "10bogus"} {
		sheet := parseSheet(t, "probe { width: "+input+"; }")
		errs := sheet.Errors()
		if len(errs) != 1 || !strings.Contains(errs[0].Message, "invalid unit") {
			t.Fatalf("%q: expected an invalid-unit diagnostic, got %v", input, errs)
		}
		rules := sheet.Rules()
		if len(rules) != 1 || len(rules[0].Properties) != 0 {
			t.Errorf("%q: expected the declaration to be dropped, got %v", input, rules)
		}
	}
}

func TestValues_VarWithRegisteredProperty(t *testing.T) {
	sheet := css.NewStyleSheet(zap.NewNop())
	sheet.Registry().Add(css.Definition{
		Name:    "--gap",
		Syntax:  css.Universal(),
		Initial: []css.Value{css.Dim(css.Dimension{Value: 4, Unit: css.UnitPx})},
	})
	sheet.ParseString(`a { margin: var(--gap); }`, "test.css")

	if errs := sheet.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	v := sheet.Rules()[0].Properties[0].Values[0]
	if v.Kind != css.ValueDimension || v.Dim.Value != 4 || v.Dim.Unit != css.UnitPx {
		t.Errorf("expected var() to yield 4px, got %s", v)
	}
}

func TestValues_VarFallback(t *testing.T) {
	values := parseValues(t, "var(--missing, 2em)")
	if len(values) != 1 {
		t.Fatalf("expected one fallback value, got %d", len(values))
	}
	if values[0].Kind != css.ValueDimension || values[0].Dim.Unit != css.UnitEm {
		t.Errorf("expected the 2em fallback, got %s", values[0])
	}
}

func TestValues_VarWithoutFallback(t *testing.T) {
	sheet := parseSheet(t, `a { margin: var(--missing); }`)
	errs := sheet.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "no fallback") {
		t.Fatalf("expected a missing-fallback diagnostic, got %v", errs)
	}
}
