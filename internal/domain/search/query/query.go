// Package query turns free-form search text into a residual search string
// and the set of fields the search is scoped to.
package query

// FieldsParam is the query key carrying the comma-separated search fields.
const FieldsParam = "sfields"

// Scope tells where a query's fields came from.
type Scope string

// Scope values.
const (
	// ScopeDirectives means the text carried inline "in:" directives.
	ScopeDirectives Scope = "directives"
	// ScopeChecked means fields were taken from the caller's checked options.
	ScopeChecked Scope = "checked"
	// ScopeNone means no directives and no checked options.
	ScopeNone Scope = "none"
)

// Query is the result of parsing one piece of search text.
type Query struct {
	text    string
	fields  []string
	dropped []string
	scope   Scope
}

// Text returns the residual search text, not encoded.
func (q Query) Text() string { return q.text }

// Fields returns the fields the search applies to, in order. May contain duplicates.
func (q Query) Fields() []string {
	out := make([]string, len(q.fields))
	copy(out, q.fields)
	return out
}

// Dropped returns directive field names that were stripped because the environment does not know them.
func (q Query) Dropped() []string {
	out := make([]string, len(q.dropped))
	copy(out, q.dropped)
	return out
}

// Scope returns where the fields came from.
func (q Query) Scope() Scope { return q.scope }

// Params returns the query as ordered components: the bare residual text,
// then FieldsParam when any fields apply.
func (q Query) Params() Params {
	p := Params{}.Add("", q.text)
	if len(q.fields) > 0 {
		p = p.Add(FieldsParam, q.fields...)
	}
	return p
}

// Encode returns the query as a URL query value, e.g. "hello%20world&sfields=source,target".
func (q Query) Encode() string {
	return q.Params().Encode()
}
