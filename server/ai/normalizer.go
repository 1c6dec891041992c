package ai

import (
	"encoding/json"
	"fmt"
)

// texter matches SDK response types that expose their concatenated text parts.
type texter interface {
	Text() string
}

// ExtractText pulls a best-effort plain string out of a provider response
// whose shape is provider- and version-dependent. Strategies are tried in
// decreasing confidence; each is total, and a panic inside one strategy moves
// on to the next. Returns "" when nothing can be extracted. Never panics.
func ExtractText(v any) string {
	if v == nil {
		return ""
	}

	strategies := []func(any) (string, bool){
		extractDirectText,
		extractFromCandidates,
		extractAsJSON,
		extractStringified,
	}
	for _, strategy := range strategies {
		if text, ok := tryStrategy(strategy, v); ok {
			return text
		}
	}
	return ""
}

// tryStrategy runs one extraction strategy, swallowing panics so a malformed
// shape only costs us that strategy.
func tryStrategy(strategy func(any) (string, bool), v any) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()
	return strategy(v)
}

// extractDirectText handles the most direct shapes: an SDK response with a
// Text() accessor, or a mapping with a scalar "text" field. A Text() accessor
// is authoritative even when it yields "": a blocked or empty reply must come
// out empty, not as a stringified struct dump.
func extractDirectText(v any) (string, bool) {
	if t, ok := v.(texter); ok {
		return t.Text(), true
	}
	if m, ok := v.(map[string]any); ok {
		if text, ok := m["text"].(string); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

// extractFromCandidates handles nested candidate shapes some SDK versions use:
// candidates[0].output[0].content[0].text or candidates[0].message.text.
func extractFromCandidates(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	candidates, ok := m["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return "", false
	}
	first, ok := candidates[0].(map[string]any)
	if !ok {
		return "", false
	}

	out := first["output"]
	if out == nil {
		out = first["message"]
	}
	switch out := out.(type) {
	case []any:
		if len(out) == 0 {
			return "", false
		}
		piece, ok := out[0].(map[string]any)
		if !ok {
			return "", false
		}
		content, ok := piece["content"].([]any)
		if !ok || len(content) == 0 {
			return "", false
		}
		if chunk, ok := content[0].(map[string]any); ok {
			if text, ok := chunk["text"].(string); ok && text != "" {
				return text, true
			}
		}
	case map[string]any:
		if text, ok := out["text"].(string); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

// extractAsJSON serializes structured values that carried no recognizable
// text field.
func extractAsJSON(v any) (string, bool) {
	switch v.(type) {
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
	return "", false
}

// extractStringified is the last resort for scalar values.
func extractStringified(v any) (string, bool) {
	return fmt.Sprintf("%v", v), true
}
