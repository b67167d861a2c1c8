// Where: internal/parser/registry.go
// What: Ordered registry of parser factories.
// Why: Dispatch each discovered file to every parser that claims it.
package parser

import (
	"fmt"
	"strings"
)

// FileResult is the outcome of one parser applied to one file.
type FileResult struct {
	Path   string `json:"path" yaml:"path"`
	Parser string `json:"parser" yaml:"parser"`
	Result `yaml:",inline"`
}

// Registry holds factories in registration order.
type Registry struct {
	factories []Factory
}

// NewRegistry creates a registry with the given factories.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{}
	for _, f := range factories {
		r.Register(f)
	}
	return r
}

// Register appends a factory. Nil factories are ignored.
func (r *Registry) Register(f Factory) {
	if f == nil {
		return
	}
	r.factories = append(r.factories, f)
}

// Factories returns the registered factories in order.
func (r *Registry) Factories() []Factory {
	out := make([]Factory, len(r.factories))
	copy(out, r.factories)
	return out
}

// Lookup finds a factory by name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	for _, f := range r.factories {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Filter returns a registry restricted to the named factories, keeping
// registration order. An empty list returns r itself.
func (r *Registry) Filter(names []string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	wanted := map[string]struct{}{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := r.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown parser %q (available: %s)", name, strings.Join(r.Names(), ", "))
		}
		wanted[name] = struct{}{}
	}
	filtered := &Registry{}
	for _, f := range r.factories {
		if _, ok := wanted[f.Name()]; ok {
			filtered.Register(f)
		}
	}
	return filtered, nil
}

// Names lists factory names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for _, f := range r.factories {
		names = append(names, f.Name())
	}
	return names
}

// Match returns the factories whose CanParse accepts path.
func (r *Registry) Match(path string) []Factory {
	var matches []Factory
	for _, f := range r.factories {
		if f.CanParse(path) {
			matches = append(matches, f)
		}
	}
	return matches
}

// ParseFile runs every matching parser against path.
func (r *Registry) ParseFile(path, projectRoot string) []FileResult {
	var results []FileResult
	for _, f := range r.Match(path) {
		results = append(results, FileResult{
			Path:   path,
			Parser: f.Name(),
			Result: f.New(path, projectRoot).Parse(),
		})
	}
	return results
}
