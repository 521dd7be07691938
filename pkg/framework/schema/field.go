package schema

import (
	"encoding/json"
	"fmt"
)

// ConfigField describes one user-configurable setting. Key is stable across
// schema regenerations for the same logical setting; hosts persist
// configuration keyed by it.
type ConfigField struct {
	Key     string
	Label   string
	Type    FieldType
	Default json.RawMessage // interchange-format value; nil when absent
	Hint    string          // empty when absent
}

type configFieldJSON struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Type    json.RawMessage `json:"type"`
	Default json.RawMessage `json:"default,omitempty"`
	Hint    string          `json:"hint,omitempty"`
}

// MarshalJSON encodes the field with its tagged type object, omitting
// default and hint when absent.
func (f ConfigField) MarshalJSON() ([]byte, error) {
	ft, err := MarshalFieldType(f.Type)
	if err != nil {
		return nil, fmt.Errorf("schema: field %q: %w", f.Key, err)
	}
	return json.Marshal(configFieldJSON{
		Key:     f.Key,
		Label:   f.Label,
		Type:    ft,
		Default: f.Default,
		Hint:    f.Hint,
	})
}

// UnmarshalJSON decodes a field, rejecting unknown type discriminants.
func (f *ConfigField) UnmarshalJSON(data []byte) error {
	var raw configFieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ft, err := UnmarshalFieldType(raw.Type)
	if err != nil {
		return fmt.Errorf("schema: field %q: %w", raw.Key, err)
	}
	f.Key = raw.Key
	f.Label = raw.Label
	f.Type = ft
	f.Default = raw.Default
	f.Hint = raw.Hint
	return nil
}

// NewField creates a field with an explicit type.
func NewField(key, label string, ft FieldType) *ConfigField {
	return &ConfigField{Key: key, Label: label, Type: ft}
}

// Text creates a single-line text field with no length limit.
func Text(key, label string) *ConfigField {
	return NewField(key, label, &TextType{})
}

// Integer creates an unbounded integer field with step 1.
func Integer(key, label string) *ConfigField {
	return NewField(key, label, &IntegerType{Step: 1})
}

// Float creates an unbounded float field with step 0.1.
func Float(key, label string) *ConfigField {
	return NewField(key, label, &FloatType{Step: 0.1})
}

// Boolean creates a true/false field.
func Boolean(key, label string) *ConfigField {
	return NewField(key, label, &BooleanType{})
}

// FilePath creates an open-file field with no filters.
func FilePath(key, label string) *ConfigField {
	return NewField(key, label, &FilePathType{Mode: FileModeOpen, Filters: []FileFilter{}})
}

// DynamicList creates a list field of single-line text items with the add
// affordance labelled "Add".
func DynamicList(key, label string) *ConfigField {
	return NewField(key, label, &DynamicListType{ItemType: &TextType{}, AddLabel: "Add"})
}

// Choice creates a fixed-option field.
func Choice(key, label string, options ...string) *ConfigField {
	return NewField(key, label, &ChoiceType{Options: options})
}

// The mutators below are deliberately permissive: applied to a field whose
// type does not carry the targeted attribute they silently do nothing, so
// generic call sites need not branch on the variant first.

// DefaultValue sets the field's default, encoded as an interchange value.
// Values that cannot be encoded are ignored.
func (f *ConfigField) DefaultValue(v any) *ConfigField {
	raw, err := json.Marshal(v)
	if err != nil {
		return f
	}
	f.Default = raw
	return f
}

// Hinted sets the field's hint text.
func (f *ConfigField) Hinted(hint string) *ConfigField {
	f.Hint = hint
	return f
}

// Multiline marks a text field as multi-line.
func (f *ConfigField) Multiline() *ConfigField {
	if t, ok := f.Type.(*TextType); ok {
		t.Multiline = true
	}
	return f
}

// MaxLength sets a text field's maximum length.
func (f *ConfigField) MaxLength(max int) *ConfigField {
	if t, ok := f.Type.(*TextType); ok {
		t.MaxLength = &max
	}
	return f
}

// Min sets an integer field's lower bound.
func (f *ConfigField) Min(min int64) *ConfigField {
	if t, ok := f.Type.(*IntegerType); ok {
		t.Min = &min
	}
	return f
}

// Max sets an integer field's upper bound.
func (f *ConfigField) Max(max int64) *ConfigField {
	if t, ok := f.Type.(*IntegerType); ok {
		t.Max = &max
	}
	return f
}

// Step sets an integer field's step.
func (f *ConfigField) Step(step int64) *ConfigField {
	if t, ok := f.Type.(*IntegerType); ok {
		t.Step = step
	}
	return f
}

// MinF sets a float field's lower bound.
func (f *ConfigField) MinF(min float64) *ConfigField {
	if t, ok := f.Type.(*FloatType); ok {
		t.Min = &min
	}
	return f
}

// MaxF sets a float field's upper bound.
func (f *ConfigField) MaxF(max float64) *ConfigField {
	if t, ok := f.Type.(*FloatType); ok {
		t.Max = &max
	}
	return f
}

// StepF sets a float field's step.
func (f *ConfigField) StepF(step float64) *ConfigField {
	if t, ok := f.Type.(*FloatType); ok {
		t.Step = step
	}
	return f
}

// Mode sets a filepath field's dialog mode.
func (f *ConfigField) Mode(mode FileMode) *ConfigField {
	if t, ok := f.Type.(*FilePathType); ok {
		t.Mode = mode
	}
	return f
}

// Filter appends a dialog filter to a filepath field.
func (f *ConfigField) Filter(name, pattern string) *ConfigField {
	if t, ok := f.Type.(*FilePathType); ok {
		t.Filters = append(t.Filters, FileFilter{Name: name, Pattern: pattern})
	}
	return f
}

// ItemType sets a dynamic list field's item type.
func (f *ConfigField) ItemType(item FieldType) *ConfigField {
	if t, ok := f.Type.(*DynamicListType); ok && item != nil {
		t.ItemType = item
	}
	return f
}

// AddLabel sets a dynamic list field's add-affordance label.
func (f *ConfigField) AddLabel(label string) *ConfigField {
	if t, ok := f.Type.(*DynamicListType); ok {
		t.AddLabel = label
	}
	return f
}
