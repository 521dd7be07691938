package plugin

import (
	"encoding/json"
	"fmt"
)

// Var is one named value in a plugin's metadata. It serializes as a
// [name, value] pair, preserving declaration order across the boundary.
type Var struct {
	Name  string
	Value json.RawMessage
}

// NewVar builds a Var from any encodable value.
func NewVar(name string, value any) Var {
	raw, err := json.Marshal(value)
	if err != nil {
		raw = []byte("null")
	}
	return Var{Name: name, Value: raw}
}

// MarshalJSON encodes the pair as a two-element array.
func (v Var) MarshalJSON() ([]byte, error) {
	name, err := json.Marshal(v.Name)
	if err != nil {
		return nil, err
	}
	value := v.Value
	if value == nil {
		value = []byte("null")
	}
	return json.Marshal([2]json.RawMessage{name, value})
}

// UnmarshalJSON decodes a two-element array.
func (v *Var) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("plugin: variable must be a [name, value] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &v.Name); err != nil {
		return err
	}
	v.Value = pair[1]
	return nil
}

// Meta is a plugin type's descriptive record. FixedVars are immutable;
// DefaultVars may be overridden by the host. Declared once per plugin type.
type Meta struct {
	Name        string `json:"name"`
	FixedVars   []Var  `json:"fixed_vars"`
	DefaultVars []Var  `json:"default_vars"`
}
