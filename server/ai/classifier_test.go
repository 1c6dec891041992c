package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRecipe(t *testing.T) {
	raw := `{"type":"recipe","title":"X","ingredients":["a","b"],"instructions":["mix"]}`
	c := Classify(raw)

	assert.Equal(t, KindRecipe, c.Kind)
	assert.Equal(t, raw, c.Raw)
	require.NotNil(t, c.Recipe)
	assert.Equal(t, "X", c.Recipe["title"])
}

func TestClassifyText(t *testing.T) {
	c := Classify(`{"type":"text","content":"hi"}`)

	assert.Equal(t, KindText, c.Kind)
	assert.Equal(t, "hi", c.Content)
	assert.Nil(t, c.Recipe)
}

func TestClassifyTextMissingContent(t *testing.T) {
	raw := `{"type":"text"}`
	c := Classify(raw)

	assert.Equal(t, KindText, c.Kind)
	// Falls back to the raw string when content is absent.
	assert.Equal(t, raw, c.Content)
}

func TestClassifyPlainFallback(t *testing.T) {
	c := Classify("not json")

	assert.Equal(t, KindPlainFallback, c.Kind)
	assert.Equal(t, "not json", c.Content)
	assert.Equal(t, "not json", c.Raw)
}

func TestClassifyUnknownShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unrecognized type tag", `{"type":"other"}`},
		{"untagged object", `{"foo":"bar"}`},
		{"json array", `[1,2,3]`},
		{"json scalar", `"hi"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.raw)
			assert.Equal(t, KindUnknownShape, c.Kind)
			assert.Equal(t, UnknownShapeReply, c.Content)
			assert.Equal(t, tt.raw, c.Raw)
		})
	}
}
