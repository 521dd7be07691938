package schema

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileMode discriminates the filesystem-dialog affordance a host should
// present for a filepath field.
type FileMode string

const (
	// FileModeOpen selects an existing file.
	FileModeOpen FileMode = "openfile"
	// FileModeSave selects a file to write.
	FileModeSave FileMode = "savefile"
	// FileModeFolder selects a directory.
	FileModeFolder FileMode = "selectfolder"
)

// UnmarshalJSON rejects unknown file modes instead of defaulting.
func (m *FileMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch FileMode(s) {
	case FileModeOpen, FileModeSave, FileModeFolder:
		*m = FileMode(s)
		return nil
	}
	return fmt.Errorf("schema: unknown file mode %q", s)
}

// Field kind discriminants as they appear on the wire.
const (
	KindInteger     = "integer"
	KindFloat       = "float"
	KindText        = "text"
	KindBoolean     = "boolean"
	KindFilePath    = "filepath"
	KindDynamicList = "dynamiclist"
	KindChoice      = "choice"
)

// FieldType describes the data type and constraints of one configurable
// field. The set of implementations is closed; each serializes as an object
// whose "kind" key carries the lowercase discriminant. DynamicListType nests
// another FieldType, so arbitrarily deep lists are representable — depth is
// bounded by schema-author discipline, not by this package.
type FieldType interface {
	// Kind returns the wire discriminant for this variant.
	Kind() string
}

// IntegerType constrains an integer field. Nil bounds mean unbounded.
type IntegerType struct {
	Min  *int64 `json:"min,omitempty"`
	Max  *int64 `json:"max,omitempty"`
	Step int64  `json:"step"`
}

// Kind returns the integer discriminant.
func (*IntegerType) Kind() string { return KindInteger }

// FloatType constrains a floating-point field. Nil bounds mean unbounded.
type FloatType struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step float64  `json:"step"`
}

// Kind returns the float discriminant.
func (*FloatType) Kind() string { return KindFloat }

// TextType constrains a text field. A nil MaxLength means unlimited.
type TextType struct {
	Multiline bool `json:"multiline"`
	MaxLength *int `json:"max_length,omitempty"`
}

// Kind returns the text discriminant.
func (*TextType) Kind() string { return KindText }

// BooleanType is a true/false field. It carries no payload.
type BooleanType struct{}

// Kind returns the boolean discriminant.
func (*BooleanType) Kind() string { return KindBoolean }

// FileFilter is one dialog filter, serialized as a [name, pattern] pair.
type FileFilter struct {
	Name    string
	Pattern string
}

// MarshalJSON encodes the filter as a two-element array.
func (f FileFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{f.Name, f.Pattern})
}

// UnmarshalJSON decodes a two-element array.
func (f *FileFilter) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("schema: file filter must be a [name, pattern] pair: %w", err)
	}
	f.Name, f.Pattern = pair[0], pair[1]
	return nil
}

// FilePathType is a filesystem path field.
type FilePathType struct {
	Mode    FileMode     `json:"mode"`
	Filters []FileFilter `json:"filters"`
}

// Kind returns the filepath discriminant.
func (*FilePathType) Kind() string { return KindFilePath }

// DynamicListType is an extendable list whose items share one nested
// FieldType.
type DynamicListType struct {
	ItemType FieldType
	AddLabel string
}

// Kind returns the dynamiclist discriminant.
func (*DynamicListType) Kind() string { return KindDynamicList }

type dynamicListJSON struct {
	ItemType json.RawMessage `json:"item_type"`
	AddLabel string          `json:"add_label"`
}

// MarshalJSON encodes the nested item type with its own discriminant.
func (d *DynamicListType) MarshalJSON() ([]byte, error) {
	item, err := MarshalFieldType(d.ItemType)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dynamicListJSON{ItemType: item, AddLabel: d.AddLabel})
}

// UnmarshalJSON decodes the nested item type recursively.
func (d *DynamicListType) UnmarshalJSON(data []byte) error {
	var raw dynamicListJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	item, err := UnmarshalFieldType(raw.ItemType)
	if err != nil {
		return err
	}
	d.ItemType = item
	d.AddLabel = raw.AddLabel
	return nil
}

// ChoiceType is a fixed list of selectable options.
type ChoiceType struct {
	Options []string `json:"options"`
}

// Kind returns the choice discriminant.
func (*ChoiceType) Kind() string { return KindChoice }

// MarshalFieldType encodes a field type as a tagged object: the variant's
// payload keys plus a "kind" discriminant.
func MarshalFieldType(ft FieldType) ([]byte, error) {
	if ft == nil {
		return nil, fmt.Errorf("schema: nil field type")
	}
	payload, err := json.Marshal(ft)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(payload, "kind", ft.Kind())
}

// UnmarshalFieldType decodes a tagged field-type object. Unknown
// discriminants are an error, never a silent default.
func UnmarshalFieldType(data []byte) (FieldType, error) {
	kind := gjson.GetBytes(data, "kind")
	if !kind.Exists() {
		return nil, fmt.Errorf("schema: field type missing kind discriminant")
	}
	var ft FieldType
	switch kind.String() {
	case KindInteger:
		ft = &IntegerType{}
	case KindFloat:
		ft = &FloatType{}
	case KindText:
		ft = &TextType{}
	case KindBoolean:
		return &BooleanType{}, nil
	case KindFilePath:
		ft = &FilePathType{}
	case KindDynamicList:
		ft = &DynamicListType{}
	case KindChoice:
		ft = &ChoiceType{}
	default:
		return nil, fmt.Errorf("schema: unknown field kind %q", kind.String())
	}
	if err := json.Unmarshal(data, ft); err != nil {
		return nil, err
	}
	return ft, nil
}
