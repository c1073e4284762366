package css_test

import (
	"testing"

	"cssp/css"
)

func mustParseSyntax(t *testing.T, input string) css.Syntax {
	t.Helper()
	s, err := css.ParseSyntax(input)
	if err != nil {
		t.Fatalf("failed to parse syntax %q: %v", input, err)
	}
	return s
}

func TestSyntax_Universal(t *testing.T) {
	s := mustParseSyntax(t, "*")
	if s.Kind != css.SyntaxUniversal {
		t.Fatalf("expected the universal syntax, got %v", s)
	}
	// Universal accepts anything.
	values := []css.Value{css.String("whatever"), css.Integer(3)}
	if err := s.Validate(values, css.ListSpaceSeparated); err != nil {
		t.Errorf("universal syntax rejected values: %v", err)
	}
}

func TestSyntax_DataTypes(t *testing.T) {
	s := mustParseSyntax(t, "<length>")
	if s.Kind != css.SyntaxComponents || len(s.Components) != 1 {
		t.Fatalf("expected one component, got %v", s)
	}

	px := css.Dim(css.Dimension{Value: 4, Unit: css.UnitPx})
	if err := s.Validate([]css.Value{px}, css.ListNone); err != nil {
		t.Errorf("<length> rejected 4px: %v", err)
	}
	if err := s.Validate([]css.Value{css.String("red")}, css.ListNone); err == nil {
		t.Error("<length> accepted a keyword")
	}
	if err := s.Validate([]css.Value{px, px}, css.ListNone); err == nil {
		t.Error("<length> accepted two values")
	}
}

func TestSyntax_LengthPercentage(t *testing.T) {
	s := mustParseSyntax(t, "<length-percentage>")
	pct := css.Dim(css.Dimension{Value: 50, Unit: css.UnitPercent})
	px := css.Dim(css.Dimension{Value: 4, Unit: css.UnitPx})
	for _, v := range []css.Value{pct, px} {
		if err := s.Validate([]css.Value{v}, css.ListNone); err != nil {
			t.Errorf("<length-percentage> rejected %s: %v", v, err)
		}
	}
}

func TestSyntax_NumberAcceptsInteger(t *testing.T) {
	s := mustParseSyntax(t, "<number>")
	if err := s.Validate([]css.Value{css.Integer(3)}, css.ListNone); err != nil {
		t.Errorf("<number> rejected an integer: %v", err)
	}
	if err := s.Validate([]css.Value{css.Number(2.5)}, css.ListNone); err != nil {
		t.Errorf("<number> rejected 2.5: %v", err)
	}
}

func TestSyntax_Keywords(t *testing.T) {
	s := mustParseSyntax(t, "small | medium | large")
	if len(s.Components) != 1 || len(s.Components[0]) != 3 {
		t.Fatalf("expected one component with three alternatives, got %v", s)
	}
	if err := s.Validate([]css.Value{css.String("medium")}, css.ListNone); err != nil {
		t.Errorf("keyword alternative rejected: %v", err)
	}
	if err := s.Validate([]css.Value{css.String("huge")}, css.ListNone); err == nil {
		t.Error("unknown keyword accepted")
	}
}

func TestSyntax_Alternatives(t *testing.T) {
	s := mustParseSyntax(t, "<color> | none")
	red := css.Col(css.RGBA(255, 0, 0, 255))
	if err := s.Validate([]css.Value{red}, css.ListNone); err != nil {
		t.Errorf("<color> alternative rejected: %v", err)
	}
	if err := s.Validate([]css.Value{css.String("none")}, css.ListNone); err != nil {
		t.Errorf("keyword alternative rejected: %v", err)
	}
}

func TestSyntax_Sequence(t *testing.T) {
	s := mustParseSyntax(t, "<length> <color>")
	px := css.Dim(css.Dimension{Value: 1, Unit: css.UnitPx})
	red := css.Col(css.RGBA(255, 0, 0, 255))

	if err := s.Validate([]css.Value{px, red}, css.ListSpaceSeparated); err != nil {
		t.Errorf("sequence rejected matching values: %v", err)
	}
	if err := s.Validate([]css.Value{px}, css.ListNone); err == nil {
		t.Error("sequence accepted a short value list")
	}
	if err := s.Validate([]css.Value{red, px}, css.ListSpaceSeparated); err == nil {
		t.Error("sequence accepted values out of order")
	}
}

func TestSyntax_Lists(t *testing.T) {
	space := mustParseSyntax(t, "<length>+")
	comma := mustParseSyntax(t, "<length>#")
	px := css.Dim(css.Dimension{Value: 1, Unit: css.UnitPx})
	values := []css.Value{px, px, px}

	if err := space.Validate(values, css.ListSpaceSeparated); err != nil {
		t.Errorf("<length>+ rejected a space list: %v", err)
	}
	if err := space.Validate(values, css.ListCommaSeparated); err == nil {
		t.Error("<length>+ accepted a comma list")
	}
	if err := comma.Validate(values, css.ListCommaSeparated); err != nil {
		t.Errorf("<length># rejected a comma list: %v", err)
	}
	if err := comma.Validate(values, css.ListSpaceSeparated); err == nil {
		t.Error("<length># accepted a space list")
	}
}

func TestSyntax_ParseErrors(t *testing.T) {
	for _, input := range []string{"", "<bogus>", "<length", "|"} {
		if _, err := css.ParseSyntax(input); err == nil {
			t.Errorf("expected %q to fail", input)
		}
	}
}
