package field

import "fmt"

// Well-known unit fields that searches can be scoped to.
const (
	Source    = "source"
	Target    = "target"
	Notes     = "notes"
	Locations = "locations"
)

// MaxNameLength is the maximum allowed field name length.
const MaxNameLength = 64

// Set is an immutable, ordered collection of unique field names.
type Set struct {
	names []string
	index map[string]struct{}
}

// NewSet validates and creates a Set.
// Names must be non-empty, unique and at most MaxNameLength bytes.
func NewSet(names []string) (Set, error) {
	if len(names) == 0 {
		return Set{}, fmt.Errorf("at least one field is required")
	}
	index := make(map[string]struct{}, len(names))
	ordered := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			return Set{}, fmt.Errorf("field name is required")
		}
		if len(n) > MaxNameLength {
			return Set{}, fmt.Errorf("field name %q too long (max %d)", n, MaxNameLength)
		}
		if _, dup := index[n]; dup {
			return Set{}, fmt.Errorf("duplicate field name %q", n)
		}
		index[n] = struct{}{}
		ordered = append(ordered, n)
	}
	return Set{names: ordered, index: index}, nil
}

// MustSet is NewSet for static tables; it panics on invalid input.
func MustSet(names ...string) Set {
	s, err := NewSet(names)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether name is in the set. Matching is exact and case-sensitive.
func (s Set) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the field names in declaration order.
func (s Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of fields.
func (s Set) Len() int { return len(s.names) }
