package query

import "strings"

// Param is one component of an encoded search query.
// An empty Key renders the values bare, without "key=".
type Param struct {
	Key    string
	Values []string
}

// Params is an ordered list of query components.
type Params []Param

// Add appends a component and returns the extended list.
func (p Params) Add(key string, values ...string) Params {
	return append(p, Param{Key: key, Values: values})
}

// Encode serializes the components joined by "&". Keys and values are escaped,
// multiple values of one component are joined by ",".
func (p Params) Encode() string {
	var b strings.Builder
	for i, prm := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		if prm.Key != "" {
			b.WriteString(Escape(prm.Key))
			b.WriteByte('=')
		}
		for j, v := range prm.Values {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(v))
		}
	}
	return b.String()
}
