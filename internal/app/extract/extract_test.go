package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/planforge/internal/app/extract"
)

func TestJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare object",
			text: `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "surrounding prose",
			text: "Sure! Here is the plan you asked for:\n{\"questions\":[]}\nLet me know if you need more.",
			want: `{"questions":[]}`,
		},
		{
			name: "markdown fence",
			text: "```json\n{\"remarks\":{\"viability\":\"High\"}}\n```",
			want: `{"remarks":{"viability":"High"}}`,
		},
		{
			name: "nested returns outer object",
			text: `{"a":{"b":1}}`,
			want: `{"a":{"b":1}}`,
		},
		{
			name: "first of two objects",
			text: `{"first":true} and then {"second":true}`,
			want: `{"first":true}`,
		},
		{
			name: "leading whitespace",
			text: "   \n\t{\"x\":[1,2,3]}  ",
			want: `{"x":[1,2,3]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract.JSONBlock(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONBlockErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "empty", text: "", want: extract.ErrEmptyInput},
		{name: "whitespace only", text: "  \n ", want: extract.ErrEmptyInput},
		{name: "unbalanced", text: `{"a":1`, want: extract.ErrIncompleteObject},
		{name: "no braces", text: "I could not produce a plan.", want: extract.ErrIncompleteObject},
		{name: "only closing brace", text: "}", want: extract.ErrIncompleteObject},
		{name: "balanced but not json", text: "{a: 1}", want: extract.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract.JSONBlock(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, extract.ErrExtraction)
		})
	}
}

func TestJSONBlockInvalidJSONKeepsSyntaxError(t *testing.T) {
	_, err := extract.JSONBlock(`{"a":,}`)
	require.Error(t, err)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestDecode(t *testing.T) {
	v, err := extract.Decode("Here you go: {\"questions\":[{\"id\":\"q1\"}],\"n\":2}")
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), obj["n"])
	assert.Len(t, obj["questions"], 1)
}
