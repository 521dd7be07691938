package abi

import (
	"encoding/json"
	"sync"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/behavior"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/schema"
)

// Boundary adapters: each wraps exactly one allocation or one encode step
// and is paired with a release counterpart. Adapters copy the text they
// read (keys, labels, patterns) and never take ownership of caller strings.
// Schemas and fields under construction live behind opaque handles so they
// can be driven from outside the process's own type system.

// SchemaHandle refers to a schema under construction. Zero is invalid.
type SchemaHandle uintptr

// FieldHandle refers to a built field not yet attached to a schema. Zero is
// invalid.
type FieldHandle uintptr

var (
	adapterMu    sync.Mutex
	schemas      = make(map[SchemaHandle]*schema.UISchema)
	fieldBuilds  = make(map[FieldHandle]*schema.ConfigField)
	nextSchemaID SchemaHandle = 1
	nextFieldID  FieldHandle  = 1
)

// NewSchema allocates an empty schema and returns its handle. Pair with
// FreeSchema.
func NewSchema() SchemaHandle {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	h := nextSchemaID
	nextSchemaID++
	schemas[h] = schema.New()
	return h
}

// FreeSchema releases a schema handle. Invalid handles are a no-op.
func FreeSchema(h SchemaHandle) {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	delete(schemas, h)
}

// SchemaAddField attaches a built field to a schema, taking ownership of
// the field handle: after a successful call the field handle is invalid and
// must not be freed or reused. Invalid handles are a no-op.
func SchemaAddField(sh SchemaHandle, fh FieldHandle) {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	s, ok := schemas[sh]
	f, okField := fieldBuilds[fh]
	if !ok || !okField {
		return
	}
	delete(fieldBuilds, fh)
	s.Field(f)
}

// SchemaJSON encodes a schema into a transfer buffer the caller must
// release. Nil on invalid handle or encode failure.
func SchemaJSON(sh SchemaHandle) *String {
	adapterMu.Lock()
	s, ok := schemas[sh]
	adapterMu.Unlock()
	if !ok {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return FromOwnedBytes(data)
}

func registerField(f *schema.ConfigField) FieldHandle {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	h := nextFieldID
	nextFieldID++
	fieldBuilds[h] = f
	return h
}

// FreeField releases a field handle that was never attached to a schema.
// Invalid handles are a no-op.
func FreeField(h FieldHandle) {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	delete(fieldBuilds, h)
}

// NewTextField builds a text field. An empty defaultValue means no default.
func NewTextField(key, label, defaultValue string) FieldHandle {
	f := schema.Text(key, label)
	if defaultValue != "" {
		f.DefaultValue(defaultValue)
	}
	return registerField(f)
}

// NewIntegerField builds a bounded integer field with a default.
func NewIntegerField(key, label string, defaultValue, min, max int64) FieldHandle {
	return registerField(schema.Integer(key, label).Min(min).Max(max).DefaultValue(defaultValue))
}

// NewFloatField builds a bounded float field with a default.
func NewFloatField(key, label string, defaultValue, min, max float64) FieldHandle {
	return registerField(schema.Float(key, label).MinF(min).MaxF(max).DefaultValue(defaultValue))
}

// NewBooleanField builds a boolean field with a default.
func NewBooleanField(key, label string, defaultValue bool) FieldHandle {
	return registerField(schema.Boolean(key, label).DefaultValue(defaultValue))
}

// NewFilePathField builds a filepath field. An empty defaultPath means no
// default.
func NewFilePathField(key, label, defaultPath string, mode schema.FileMode) FieldHandle {
	f := schema.FilePath(key, label).Mode(mode)
	if defaultPath != "" {
		f.DefaultValue(defaultPath)
	}
	return registerField(f)
}

// NewDynamicListField builds a dynamic list field. A nil itemType keeps the
// default text item type.
func NewDynamicListField(key, label, addLabel string, itemType schema.FieldType) FieldHandle {
	f := schema.DynamicList(key, label).AddLabel(addLabel)
	if itemType != nil {
		f.ItemType(itemType)
	}
	return registerField(f)
}

// FieldFilter appends a dialog filter to a built filepath field. Invalid
// handles and non-filepath fields are a no-op.
func FieldFilter(h FieldHandle, name, pattern string) {
	adapterMu.Lock()
	defer adapterMu.Unlock()

	if f, ok := fieldBuilds[h]; ok {
		f.Filter(name, pattern)
	}
}

// BehaviorJSON encodes the combined behavior query result
// {"behavior":...,"connection_dependent":...} into a transfer buffer the
// caller must release. Nil on encode failure.
func BehaviorJSON(b behavior.PluginBehavior, connectionDependent bool) *String {
	combined := struct {
		Behavior            behavior.PluginBehavior `json:"behavior"`
		ConnectionDependent bool                    `json:"connection_dependent"`
	}{b, connectionDependent}
	data, err := json.Marshal(combined)
	if err != nil {
		return nil
	}
	return FromOwnedBytes(data)
}

// FreeString is the release counterpart for transfer buffers handed out by
// the adapters. Releasing the nil sentinel is a no-op.
func FreeString(s *String) {
	s.Release()
}
