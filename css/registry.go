package css

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Definition describes a registered custom property: its accepted value
// syntax, whether it inherits, and the initial values substituted by var().
type Definition struct {
	Name    string
	Syntax  Syntax
	Inherit bool
	Initial []Value
}

// Registry holds property definitions by name. It is safe for concurrent
// use; stylesheets consult it for declaration validation and var()
// substitution, and @property rules register into it.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry returns an empty property registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Add registers a definition. It reports false if a definition with the same
// name already exists, in which case the registry is unchanged.
func (r *Registry) Add(def Definition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return false
	}
	r.defs[def.Name] = &def
	return true
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

// Names returns the registered property names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	return names
}

type definitionFile struct {
	Properties []struct {
		Name     string `yaml:"name"`
		Syntax   string `yaml:"syntax"`
		Inherits bool   `yaml:"inherits"`
		Initial  string `yaml:"initial"`
	} `yaml:"properties"`
}

// LoadFile reads property definitions from a yaml file and registers them.
// Each entry needs a name and a syntax descriptor; the optional initial value
// is parsed as declaration values and validated against the syntax.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read property definitions: %w", err)
	}

	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("unable to parse property definitions %q: %w", path, err)
	}

	for _, entry := range file.Properties {
		if entry.Name == "" {
			return fmt.Errorf("%s: property definition without a name", path)
		}
		syntax, err := ParseSyntax(entry.Syntax)
		if err != nil {
			return fmt.Errorf("%s: property %q: %w", path, entry.Name, err)
		}

		def := Definition{Name: entry.Name, Syntax: syntax, Inherit: entry.Inherits}
		if entry.Initial != "" {
			ts := newTokenStream(entry.Initial)
			values, list, err := parseComponentList(trimWhitespace(ts.toks), r)
			if err != nil {
				return fmt.Errorf("%s: property %q: invalid initial value: %w", path, entry.Name, err)
			}
			if err := syntax.Validate(values, list); err != nil {
				return fmt.Errorf("%s: property %q: initial value does not match syntax: %w", path, entry.Name, err)
			}
			def.Initial = values
		}

		if !r.Add(def) {
			return fmt.Errorf("%s: property %q is already defined", path, entry.Name)
		}
	}
	return nil
}
