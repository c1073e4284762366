package css

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// StyleSheet accumulates rules and diagnostics across any number of parsed
// sources. It is created empty and strictly additive: every parse call
// appends to the cumulative rule and error lists, never clears them. A
// StyleSheet is owned by a single caller; concurrent use must be serialized.
type StyleSheet struct {
	log      *zap.Logger
	registry *Registry
	rootPath string

	rules  []Rule
	errors []Error

	// importing guards against @import cycles within one parse call chain.
	importing map[string]bool
}

// NewStyleSheet creates an empty stylesheet. The logger may be nil.
func NewStyleSheet(log *zap.Logger) *StyleSheet {
	if log == nil {
		log = zap.NewNop()
	}
	return &StyleSheet{
		log:       log.Named("css-parser"),
		registry:  NewRegistry(),
		importing: make(map[string]bool),
	}
}

// Registry returns the property registry consulted for declaration
// validation and var() substitution. @property rules register into it;
// callers may pre-register definitions before parsing.
func (s *StyleSheet) Registry() *Registry {
	return s.registry
}

// SetRegistry replaces the property registry. It affects subsequent parse
// calls only.
func (s *StyleSheet) SetRegistry(reg *Registry) {
	if reg != nil {
		s.registry = reg
	}
}

// SetRootPath sets the directory against which relative file names are
// resolved. It affects subsequent ParseFile calls only.
func (s *StyleSheet) SetRootPath(dir string) {
	s.rootPath = dir
}

// ParseString parses source as a complete set of top-level rules, appending
// the results to the cumulative rule and error lists. Diagnostics are tagged
// with origin as their file name. Relative @import targets resolve against
// the root path.
func (s *StyleSheet) ParseString(source, origin string) {
	r := &run{
		ts:       newTokenStream(source),
		file:     origin,
		registry: s.registry,
	}
	r.importFn = func(name string) {
		s.ParseFile(name)
	}

	rules := r.parseTopLevel()
	s.rules = append(s.rules, rules...)
	s.errors = append(s.errors, r.errors...)

	s.log.Debug("parsed stylesheet source",
		zap.String("origin", origin),
		zap.Int("rules", len(rules)),
		zap.Int("errors", len(r.errors)))
}

// ParseFile resolves name against the root path when relative, reads the
// file and parses its contents with the resolved path as origin. A read
// failure is recorded as a diagnostic with zero line and column, exactly
// like a syntax error; it never propagates to the caller.
func (s *StyleSheet) ParseFile(name string) {
	path := name
	if !filepath.IsAbs(path) && s.rootPath != "" {
		path = filepath.Join(s.rootPath, path)
	}

	if s.importing[path] {
		s.errors = append(s.errors, Error{
			File:    path,
			Message: "recursive @import of this file",
		})
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("unable to read stylesheet", zap.String("path", path), zap.Error(err))
		s.errors = append(s.errors, Error{
			File:    path,
			Message: err.Error(),
		})
		return
	}

	s.importing[path] = true
	s.ParseString(string(data), path)
	delete(s.importing, path)
}

// Rules returns a snapshot of the accumulated rules in accumulation order.
func (s *StyleSheet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Errors returns a snapshot of the accumulated diagnostics in accumulation
// order.
func (s *StyleSheet) Errors() []Error {
	out := make([]Error, len(s.errors))
	copy(out, s.errors)
	return out
}
