package value

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"blank string", "   ", nil},
		{"text", "abc", "abc"},
		{"zero", 0, 0},
		{"false", false, false},
		{"empty list", []any{}, nil},
		{"all absent list", []any{nil, "", []any{}}, nil},
		{"mixed list", []any{"a", nil, "", "b"}, []any{"a", "b"}},
		{"empty map", map[string]any{}, nil},
		{"type only", map[string]any{"@type": "Person"}, nil},
		{"type after pruning", map[string]any{"@type": "Person", "name": "", "url": nil}, nil},
		{"string list", []string{"", "x"}, []string{"x"}},
		{"empty string list", []string{"", " "}, nil},
		{
			"nested",
			map[string]any{
				"@type": "Place",
				"name":  "Somewhere",
				"geo":   map[string]any{"@type": "GeoShape", "box": ""},
				"keywords": []any{
					map[string]any{"@type": "DefinedTerm"},
					map[string]any{"@type": "DefinedTerm", "name": "x"},
				},
			},
			map[string]any{
				"@type":    "Place",
				"name":     "Somewhere",
				"keywords": []any{map[string]any{"@type": "DefinedTerm", "name": "x"}},
			},
		},
		{"ordered list empty", map[string]any{"@list": []any{nil, ""}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestNormalizeMapOfMaps(t *testing.T) {
	in := []map[string]any{{"@type": "Role"}, {"@type": "Role", "roleName": "PI"}}
	got := Normalize(in)
	assert.Equal(t, []any{map[string]any{"@type": "Role", "roleName": "PI"}}, got)
}

func TestIsAbsent(t *testing.T) {
	assert.True(t, IsAbsent(""))
	assert.True(t, IsAbsent(map[string]any{"@type": "Organization"}))
	assert.False(t, IsAbsent(0))
	assert.False(t, IsAbsent("x"))
}

func TestOrderedList(t *testing.T) {
	assert.Nil(t, OrderedList(nil))
	assert.Equal(t, "a", OrderedList([]any{"a", ""}))
	assert.Equal(t, Map{"@list": []any{"a", "b"}}, OrderedList([]any{"a", nil, "b"}))
}

func TestSingle(t *testing.T) {
	assert.Nil(t, Single([]any{nil}))
	assert.Equal(t, "a", Single(Strings([]string{"a"})))
	assert.Equal(t, []any{"a", "b"}, Single(Strings([]string{"a", "b"})))
}

func TestAsNumeric(t *testing.T) {
	assert.Equal(t, 300, AsNumeric("300"))
	assert.Equal(t, 1.5, AsNumeric(" 1.5 "))
	assert.Nil(t, AsNumeric("300 Ma"))
	assert.Nil(t, AsNumeric(""))
	assert.Nil(t, AsNumeric(nil))

	f, ok := Float("-12.25")
	assert.True(t, ok)
	assert.Equal(t, -12.25, f)
	_, ok = Float("north")
	assert.False(t, ok)
}

func TestLimitText(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, LimitText(short))

	long := strings.Repeat("é", MaxTextLength+10)
	got := LimitText(long)
	assert.Equal(t, MaxTextLength, len([]rune(got)))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.org/data"))
	assert.True(t, IsURL("ftp://cdaweb.gsfc.nasa.gov/pub"))
	assert.False(t, IsURL("example.org"))
	assert.False(t, IsURL("spdx:license"))
	assert.False(t, IsURL(""))
}
