// Package environment maps search environments to the fields a query may be scoped to.
package environment

import (
	"fmt"
	"sort"

	"github.com/translate/ptlsearch/internal/domain/search/field"
)

// Built-in environment names.
const (
	Editor      = "editor"
	Terminology = "terminology"

	// Default is used when a caller names an unknown environment.
	Default = Editor
)

// Table is an immutable mapping of environment name to its valid field set.
type Table struct {
	sets  map[string]field.Set
	names []string
	def   string
}

// NewTable validates and creates a Table.
// def must be one of the environments; every environment needs a non-empty set of unique fields.
func NewTable(def string, envs map[string][]string) (Table, error) {
	if len(envs) == 0 {
		return Table{}, fmt.Errorf("at least one environment is required")
	}
	sets := make(map[string]field.Set, len(envs))
	names := make([]string, 0, len(envs))
	for name, fields := range envs {
		if name == "" {
			return Table{}, fmt.Errorf("environment name is required")
		}
		s, err := field.NewSet(fields)
		if err != nil {
			return Table{}, fmt.Errorf("environment %q: %w", name, err)
		}
		sets[name] = s
		names = append(names, name)
	}
	sort.Strings(names)

	if def == "" {
		def = Default
	}
	if _, ok := sets[def]; !ok {
		return Table{}, fmt.Errorf("default environment %q is not defined", def)
	}

	return Table{sets: sets, names: names, def: def}, nil
}

// DefaultTable returns the built-in editor and terminology environments.
func DefaultTable() Table {
	t, err := NewTable(Default, map[string][]string{
		Editor:      {field.Source, field.Target, field.Notes, field.Locations},
		Terminology: {field.Source, field.Target, field.Notes},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the effective environment name and its field set.
// Unknown names resolve to the default environment.
func (t Table) Resolve(name string) (string, field.Set) {
	if s, ok := t.sets[name]; ok {
		return name, s
	}
	return t.def, t.sets[t.def]
}

// Default returns the fallback environment name.
func (t Table) Default() string { return t.def }

// Names returns all environment names, sorted.
func (t Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
