// Package schema describes a plugin's user-configurable fields in a form
// that round-trips losslessly through JSON, so a host can build a
// configuration interface for a plugin it knows nothing else about.
package schema

// UISchema is an ordered collection of configurable fields. Field order is
// display order. No two fields may share a key; the builder does not enforce
// this, schema authors must uphold it.
type UISchema struct {
	Fields []ConfigField `json:"fields"`
}

// New creates an empty schema.
func New() *UISchema {
	return &UISchema{Fields: []ConfigField{}}
}

// Field appends a field and returns the schema for chaining.
func (s *UISchema) Field(f *ConfigField) *UISchema {
	s.Fields = append(s.Fields, *f)
	return s
}
