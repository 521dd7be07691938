package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int         { return &v }
func i64Ptr(v int64) *int64     { return &v }
func f64Ptr(v float64) *float64 { return &v }

func TestConstructorDefaults(t *testing.T) {
	tests := []struct {
		name  string
		field *ConfigField
		want  FieldType
	}{
		{"text", Text("k", "L"), &TextType{Multiline: false, MaxLength: nil}},
		{"integer", Integer("k", "L"), &IntegerType{Step: 1}},
		{"float", Float("k", "L"), &FloatType{Step: 0.1}},
		{"boolean", Boolean("k", "L"), &BooleanType{}},
		{"filepath", FilePath("k", "L"), &FilePathType{Mode: FileModeOpen, Filters: []FileFilter{}}},
		{"dynamiclist", DynamicList("k", "L"), &DynamicListType{ItemType: &TextType{}, AddLabel: "Add"}},
		{"choice", Choice("k", "L", "a", "b"), &ChoiceType{Options: []string{"a", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "k", tt.field.Key)
			assert.Equal(t, "L", tt.field.Label)
			assert.Equal(t, tt.want, tt.field.Type)
			assert.Nil(t, tt.field.Default)
			assert.Empty(t, tt.field.Hint)
		})
	}
}

func TestMutators(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		f := Text("separator", "Separator").
			DefaultValue(",").
			MaxLength(5).
			Hinted("CSV separator")

		assert.Equal(t, json.RawMessage(`","`), f.Default)
		assert.Equal(t, "CSV separator", f.Hint)
		assert.Equal(t, &TextType{MaxLength: intPtr(5)}, f.Type)
	})

	t.Run("integer", func(t *testing.T) {
		f := Integer("priority", "Priority").Min(0).Max(99).Step(1).DefaultValue(10)

		assert.Equal(t, &IntegerType{Min: i64Ptr(0), Max: i64Ptr(99), Step: 1}, f.Type)
		assert.Equal(t, json.RawMessage(`10`), f.Default)
	})

	t.Run("float", func(t *testing.T) {
		f := Float("amplitude", "Amplitude").MinF(0).MaxF(10).StepF(0.1)

		assert.Equal(t, &FloatType{Min: f64Ptr(0), Max: f64Ptr(10), Step: 0.1}, f.Type)
	})

	t.Run("filepath", func(t *testing.T) {
		f := FilePath("path", "Output File").
			Mode(FileModeSave).
			Filter("CSV files", "*.csv").
			Filter("All files", "*")

		assert.Equal(t, &FilePathType{
			Mode: FileModeSave,
			Filters: []FileFilter{
				{Name: "CSV files", Pattern: "*.csv"},
				{Name: "All files", Pattern: "*"},
			},
		}, f.Type)
	})

	t.Run("dynamiclist", func(t *testing.T) {
		f := DynamicList("columns", "Columns").
			ItemType(&TextType{MaxLength: intPtr(50)}).
			AddLabel("Add column")

		assert.Equal(t, &DynamicListType{
			ItemType: &TextType{MaxLength: intPtr(50)},
			AddLabel: "Add column",
		}, f.Type)
	})

	t.Run("multiline", func(t *testing.T) {
		f := Text("notes", "Notes").Multiline()

		assert.Equal(t, &TextType{Multiline: true}, f.Type)
	})
}

// Mutators applied to a field whose type does not carry the targeted
// attribute must leave the encoded form unchanged.
func TestMismatchedMutatorsNoOp(t *testing.T) {
	tests := []struct {
		name  string
		build func() *ConfigField
	}{
		{"integer mutators on text", func() *ConfigField {
			return Text("k", "L").Min(1).Max(2).Step(3)
		}},
		{"float mutators on integer", func() *ConfigField {
			return Integer("k", "L").MinF(1).MaxF(2).StepF(3)
		}},
		{"text mutators on boolean", func() *ConfigField {
			return Boolean("k", "L").Multiline().MaxLength(7)
		}},
		{"filepath mutators on float", func() *ConfigField {
			return Float("k", "L").Mode(FileModeFolder).Filter("n", "*")
		}},
		{"list mutators on filepath", func() *ConfigField {
			return FilePath("k", "L").ItemType(&BooleanType{}).AddLabel("x")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated, err := json.Marshal(tt.build())
			require.NoError(t, err)

			// Rebuild without the trailing mismatched mutators.
			var pristine *ConfigField
			switch tt.name {
			case "integer mutators on text":
				pristine = Text("k", "L")
			case "float mutators on integer":
				pristine = Integer("k", "L")
			case "text mutators on boolean":
				pristine = Boolean("k", "L")
			case "filepath mutators on float":
				pristine = Float("k", "L")
			case "list mutators on filepath":
				pristine = FilePath("k", "L")
			}
			want, err := json.Marshal(pristine)
			require.NoError(t, err)

			assert.JSONEq(t, string(want), string(mutated))
		})
	}
}

func TestFieldTypeCodec(t *testing.T) {
	t.Run("integer wire shape", func(t *testing.T) {
		data, err := MarshalFieldType(&IntegerType{Min: i64Ptr(0), Max: i64Ptr(100), Step: 5})
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"integer","min":0,"max":100,"step":5}`, string(data))

		ft, err := UnmarshalFieldType(data)
		require.NoError(t, err)
		assert.Equal(t, &IntegerType{Min: i64Ptr(0), Max: i64Ptr(100), Step: 5}, ft)
	})

	t.Run("optional bounds omitted", func(t *testing.T) {
		data, err := MarshalFieldType(&IntegerType{Step: 1})
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"integer","step":1}`, string(data))
	})

	t.Run("boolean carries no payload", func(t *testing.T) {
		data, err := MarshalFieldType(&BooleanType{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"boolean"}`, string(data))
	})

	t.Run("nested dynamic list", func(t *testing.T) {
		orig := &DynamicListType{
			ItemType: &DynamicListType{
				ItemType: &IntegerType{Step: 2},
				AddLabel: "Add inner",
			},
			AddLabel: "Add outer",
		}
		data, err := MarshalFieldType(orig)
		require.NoError(t, err)

		ft, err := UnmarshalFieldType(data)
		require.NoError(t, err)
		assert.Equal(t, orig, ft)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := UnmarshalFieldType([]byte(`{"kind":"hologram"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hologram")
	})

	t.Run("missing kind rejected", func(t *testing.T) {
		_, err := UnmarshalFieldType([]byte(`{"step":1}`))
		require.Error(t, err)
	})

	t.Run("unknown file mode rejected", func(t *testing.T) {
		_, err := UnmarshalFieldType([]byte(`{"kind":"filepath","mode":"teleport","filters":[]}`))
		require.Error(t, err)
	})
}

func TestFileModeValues(t *testing.T) {
	data, err := json.Marshal(FileModeSave)
	require.NoError(t, err)
	assert.Equal(t, `"savefile"`, string(data))

	var m FileMode
	require.NoError(t, json.Unmarshal([]byte(`"selectfolder"`), &m))
	assert.Equal(t, FileModeFolder, m)
}
