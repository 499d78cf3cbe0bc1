package query

import (
	"strings"

	"github.com/translate/ptlsearch/internal/domain/search/environment"
	"github.com/translate/ptlsearch/internal/domain/search/field"
)

// Parser extracts field scoping from search text for one environment.
// It is immutable and safe for concurrent use.
type Parser struct {
	environment string
	valid       field.Set
}

// NewParser creates a Parser for env. Unknown environments fall back to the table's default.
func NewParser(env string, table environment.Table) *Parser {
	name, valid := table.Resolve(env)
	return &Parser{environment: name, valid: valid}
}

// Environment returns the resolved environment name.
func (p *Parser) Environment() string { return p.environment }

// ValidFields returns the fields directives may name in this environment.
func (p *Parser) ValidFields() field.Set { return p.valid }

// Parse splits text into residual search text and search fields.
//
// When text contains "in:<field>" directives they decide the fields: valid names are kept
// in order (duplicates included), unknown ones are ignored, and every directive token is
// removed from the text. Otherwise the text is kept verbatim and checked is used as-is.
// Parse never fails.
func (p *Parser) Parse(text string, checked []string) Query {
	if !HasDirectives(text) {
		q := Query{text: text, scope: ScopeNone}
		if len(checked) > 0 {
			q.fields = make([]string, len(checked))
			copy(q.fields, checked)
			q.scope = ScopeChecked
		}
		return q
	}

	var fields, dropped []string
	parts := strings.Split(text, " ")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		d, ok := parseDirective(part)
		if !ok {
			kept = append(kept, part)
			continue
		}
		if p.valid.Contains(d.Field) {
			fields = append(fields, d.Field)
		} else {
			dropped = append(dropped, d.Field)
		}
	}

	return Query{
		text:    strings.Join(kept, " "),
		fields:  fields,
		dropped: dropped,
		scope:   ScopeDirectives,
	}
}
