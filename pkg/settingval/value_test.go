package settingval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-admin-be/internal/entity"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		dataType entity.SettingDataType
		in       interface{}
		want     interface{}
		wantErr  bool
	}{
		{name: "string ok", dataType: entity.SettingTypeString, in: "hello", want: "hello"},
		{name: "int rejects string", dataType: entity.SettingTypeInt, in: "42", wantErr: true},
		{name: "int from json float", dataType: entity.SettingTypeInt, in: float64(42), want: 42},
		{name: "int rejects fraction", dataType: entity.SettingTypeInt, in: 4.2, wantErr: true},
		{name: "float from int", dataType: entity.SettingTypeFloat, in: 7, want: float64(7)},
		{name: "bool ok", dataType: entity.SettingTypeBool, in: true, want: true},
		{name: "bool rejects string", dataType: entity.SettingTypeBool, in: "true", wantErr: true},
		{name: "json object ok", dataType: entity.SettingTypeJSON, in: map[string]interface{}{"a": float64(1)}, want: map[string]interface{}{"a": float64(1)}},
		{name: "json array ok", dataType: entity.SettingTypeJSON, in: []interface{}{"x"}, want: []interface{}{"x"}},
		{name: "json rejects scalar", dataType: entity.SettingTypeJSON, in: "x", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Coerce(tc.dataType, tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetPath(t *testing.T) {
	value := map[string]interface{}{
		"social_links": map[string]interface{}{
			"github": "https://github.com/example",
		},
		"questions": []interface{}{"first", "second"},
	}

	got, ok := GetPath(value, "social_links.github")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/example", got)

	got, ok = GetPath(value, "questions.1")
	require.True(t, ok)
	assert.Equal(t, "second", got)

	_, ok = GetPath(value, "social_links.missing")
	assert.False(t, ok)

	_, ok = GetPath(value, "questions.9")
	assert.False(t, ok)

	got, ok = GetPath(value, "")
	require.True(t, ok)
	assert.Equal(t, value, got)
}

func TestSetPath(t *testing.T) {
	t.Run("updates nested key and reports change", func(t *testing.T) {
		value := map[string]interface{}{
			"social_links": map[string]interface{}{"github": ""},
		}

		updated, changed, err := SetPath(value, "social_links.github", "https://github.com/example")
		require.NoError(t, err)
		assert.True(t, changed)

		got, ok := GetPath(updated, "social_links.github")
		require.True(t, ok)
		assert.Equal(t, "https://github.com/example", got)
	})

	t.Run("same value is not a change", func(t *testing.T) {
		value := map[string]interface{}{"title": "RAG Platform"}

		_, changed, err := SetPath(value, "title", "RAG Platform")
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("creates missing intermediate objects", func(t *testing.T) {
		updated, changed, err := SetPath(map[string]interface{}{}, "widget.colors.primary", "#112233")
		require.NoError(t, err)
		assert.True(t, changed)

		got, ok := GetPath(updated, "widget.colors.primary")
		require.True(t, ok)
		assert.Equal(t, "#112233", got)
	})

	t.Run("replaces array element in place", func(t *testing.T) {
		value := map[string]interface{}{
			"questions": []interface{}{"first", "second"},
		}

		updated, changed, err := SetPath(value, "questions.0", "rewritten")
		require.NoError(t, err)
		assert.True(t, changed)

		got, _ := GetPath(updated, "questions.0")
		assert.Equal(t, "rewritten", got)
	})

	t.Run("rejects out of range index", func(t *testing.T) {
		value := map[string]interface{}{
			"questions": []interface{}{"only"},
		}

		_, _, err := SetPath(value, "questions.3", "nope")
		assert.Error(t, err)
	})

	t.Run("rejects traversing a scalar", func(t *testing.T) {
		value := map[string]interface{}{"title": "x"}

		_, _, err := SetPath(value, "title.nested", "nope")
		assert.Error(t, err)
	})

	t.Run("empty path replaces the whole value", func(t *testing.T) {
		updated, changed, err := SetPath("old", "", "new")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "new", updated)
	})
}

func TestRegistry(t *testing.T) {
	def, ok := Lookup("max_question_length")
	require.True(t, ok)
	assert.Equal(t, entity.SettingGroupChat, def.Group)
	assert.Equal(t, entity.SettingTypeInt, def.DataType)

	_, ok = Lookup("does_not_exist")
	assert.False(t, ok)

	groups := Groups()
	assert.Contains(t, groups, entity.SettingGroupWebsite)
	assert.Contains(t, groups, entity.SettingGroupCustomJS)
	assert.Contains(t, groups, entity.SettingGroupChat)
	assert.Contains(t, groups, entity.SettingGroupEvaluation)

	// Every registered default must satisfy its own declared type.
	for _, def := range All() {
		_, err := Coerce(def.DataType, def.DefaultValue)
		assert.NoError(t, err, "default for %s", def.Name)
	}
}
