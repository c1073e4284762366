package css

import (
	cssparse "github.com/tdewolff/parse/v2/css"
)

// parseDeclaration parses one "name: values" statement. The name is kept
// verbatim. Values are parsed generically; when a syntax descriptor is
// registered for the name the result is validated against it, and a mismatch
// is reported through validationErr while the generically parsed values are
// kept. A non-nil err means the declaration could not be parsed at all.
func parseDeclaration(toks []token, reg *Registry) (prop Property, validationErr, err error) {
	toks = trimWhitespace(toks)
	if len(toks) == 0 {
		return Property{}, nil, errAt(0, "expected a declaration")
	}

	name := toks[0]
	if !name.is(cssparse.IdentToken) && !name.is(cssparse.CustomPropertyNameToken) {
		return Property{}, nil, errAt(name.offset, "expected a property name")
	}

	rest := trimWhitespace(toks[1:])
	if len(rest) == 0 || !rest[0].is(cssparse.ColonToken) {
		return Property{}, nil, errAt(name.offset, "expected ':' after property name %q", name.data)
	}

	valueToks := trimWhitespace(rest[1:])
	if len(valueToks) == 0 {
		return Property{}, nil, errAt(name.offset, "property %q has no value", name.data)
	}

	values, list, err := parseComponentList(valueToks, reg)
	if err != nil {
		return Property{}, nil, err
	}
	if len(values) == 0 {
		return Property{}, nil, errAt(name.offset, "property %q has no value", name.data)
	}

	prop = Property{Name: name.data, Values: values}
	if reg != nil {
		if def, ok := reg.Lookup(name.data); ok {
			if verr := def.Syntax.Validate(values, list); verr != nil {
				return prop, errAt(name.offset, "property %q: %v", name.data, verr), nil
			}
		}
	}
	return prop, nil, nil
}

// cloneProperties deep-copies a declaration list so expanded rules never
// share value storage.
func cloneProperties(props []Property) []Property {
	if props == nil {
		return nil
	}
	out := make([]Property, len(props))
	for i, p := range props {
		values := make([]Value, len(p.Values))
		for j, v := range p.Values {
			if v.Kind == ValueColor {
				v.Col = v.Col.Clone()
			}
			values[j] = v
		}
		out[i] = Property{Name: p.Name, Values: values}
	}
	return out
}
