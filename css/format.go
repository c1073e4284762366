package css

import (
	"fmt"
	"strconv"
	"strings"
)

func (d Dimension) String() string {
	mag := strconv.FormatFloat(float64(d.Value), 'g', -1, 32)
	switch d.Unit {
	case UnitNumber:
		return mag
	default:
		return mag + d.Unit.String()
	}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Text
	case ValueInteger:
		return strconv.Itoa(v.Int)
	case ValueDimension:
		return v.Dim.String()
	case ValueColor:
		return v.Col.String()
	case ValueURL:
		return fmt.Sprintf("url(%s)", v.Text)
	default:
		return "Empty"
	}
}

func (c Color) String() string {
	switch c.Kind {
	case ColorRGBA:
		return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
	case ColorCustom:
		if len(c.Arguments) == 0 {
			return fmt.Sprintf("custom(%s)", c.Source)
		}
		return fmt.Sprintf("custom(%s, %s)", c.Source, strings.Join(c.Arguments, ", "))
	case ColorModified:
		return c.formatModified()
	default:
		return "empty"
	}
}

func (c Color) formatModified() string {
	base := "empty"
	if c.Base != nil {
		base = c.Base.String()
	}
	switch c.Op {
	case ColorOpMix:
		other := "empty"
		if c.Other != nil {
			other = c.Other.String()
		}
		return fmt.Sprintf("mix(%s, %s, %s)", base, other, strconv.FormatFloat(float64(c.Amount), 'g', -1, 32))
	case ColorOpSet:
		var overrides []string
		channel := func(name string, v *uint8) {
			if v != nil {
				overrides = append(overrides, fmt.Sprintf("%s: %d", name, *v))
			}
		}
		channel("r", c.Set.R)
		channel("g", c.Set.G)
		channel("b", c.Set.B)
		channel("a", c.Set.A)
		return fmt.Sprintf("set(%s, %s)", base, strings.Join(overrides, ", "))
	default:
		other := "empty"
		if c.Other != nil {
			other = c.Other.String()
		}
		return fmt.Sprintf("%s(%s, %s)", strings.ToLower(c.Op.String()), base, other)
	}
}

func (a AttributeMatch) String() string {
	if a.Operator == AttrExists {
		return a.Name
	}
	return fmt.Sprintf("%s %s %s", a.Name, a.Operator, a.Value)
}

func (p SelectorPart) String() string {
	switch {
	case p.Kind == SelectorAttribute && p.Attr != nil:
		return fmt.Sprintf("Part(%s, %s)", p.Kind, p.Attr)
	case p.Value.Kind == ValueEmpty:
		return fmt.Sprintf("Part(%s)", p.Kind)
	default:
		return fmt.Sprintf("Part(%s, %s)", p.Kind, p.Value)
	}
}

func (s Selector) String() string {
	parts := make([]string, len(s.Parts))
	for i, p := range s.Parts {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Selector(%s)", strings.Join(parts, ", "))
}

func (p Property) String() string {
	values := make([]string, len(p.Values))
	for i, v := range p.Values {
		values[i] = v.String()
	}
	return fmt.Sprintf("Property(%s: %s)", p.Name, strings.Join(values, " "))
}
