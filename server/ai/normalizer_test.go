package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTextResponse struct {
	text string
}

func (f *fakeTextResponse) Text() string { return f.text }

type panickyResponse struct{}

func (p *panickyResponse) Text() string { panic("broken SDK shape") }

func TestExtractTextDirect(t *testing.T) {
	assert.Equal(t, "hello", ExtractText(&fakeTextResponse{text: "hello"}))
	assert.Equal(t, "hello", ExtractText(map[string]any{"text": "hello"}))
}

func TestExtractTextEmptyAccessor(t *testing.T) {
	// A blocked or empty reply comes back as "" so the orchestrator can fail
	// the turn, never as a stringified struct.
	assert.Equal(t, "", ExtractText(&fakeTextResponse{}))
}

func TestExtractTextCandidates(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name: "output list shape",
			input: map[string]any{
				"candidates": []any{
					map[string]any{
						"output": []any{
							map[string]any{
								"content": []any{map[string]any{"text": "from output"}},
							},
						},
					},
				},
			},
			expected: "from output",
		},
		{
			name: "message object shape",
			input: map[string]any{
				"candidates": []any{
					map[string]any{
						"message": map[string]any{"text": "from message"},
					},
				},
			},
			expected: "from message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractText(tt.input))
		})
	}
}

func TestExtractTextStructuredFallback(t *testing.T) {
	// A mapping with no recognizable text field serializes to JSON.
	assert.Equal(t, `{"foo":"bar"}`, ExtractText(map[string]any{"foo": "bar"}))
	assert.Equal(t, `[1,2]`, ExtractText([]any{float64(1), float64(2)}))
}

func TestExtractTextStringify(t *testing.T) {
	assert.Equal(t, "42", ExtractText(42))
	assert.Equal(t, "plain", ExtractText("plain"))
}

func TestExtractTextNeverPanics(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))

	// A panicking Text() falls through; the pointer value stringifies via the
	// last-resort strategy without raising.
	assert.NotPanics(t, func() {
		ExtractText(&panickyResponse{})
	})

	// Malformed candidate shapes degrade instead of panicking.
	malformed := map[string]any{
		"candidates": []any{
			map[string]any{"output": []any{"not a map"}},
		},
	}
	assert.NotPanics(t, func() {
		ExtractText(malformed)
	})
}

func TestExtractTextEmptyCandidates(t *testing.T) {
	// No candidates and no text: falls through to JSON serialization.
	input := map[string]any{"candidates": []any{}}
	assert.Equal(t, `{"candidates":[]}`, ExtractText(input))
}
