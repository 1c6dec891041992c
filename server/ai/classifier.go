package ai

import "encoding/json"

// Kind is the classification variant of a normalized provider reply.
type Kind string

const (
	// KindRecipe is a JSON object with type "recipe".
	KindRecipe Kind = "recipe"
	// KindText is a JSON object with type "text".
	KindText Kind = "text"
	// KindPlainFallback is a reply that failed to parse as JSON.
	KindPlainFallback Kind = "plain_fallback"
	// KindUnknownShape is valid JSON of an unrecognized shape.
	KindUnknownShape Kind = "unknown_shape"
)

// UnknownShapeReply is returned verbatim when the provider answered with valid
// JSON we do not recognize.
const UnknownShapeReply = "I received an unexpected response format. Could you rephrase?"

// Classification is the result of interpreting a provider reply against the
// fixed two-shape protocol. Raw always carries the normalized string so the
// caller can persist it regardless of variant.
type Classification struct {
	Kind Kind
	// Raw is the normalized provider text, unmodified.
	Raw string
	// Content is the user-facing reply body for this variant.
	Content string
	// Recipe holds the full decoded object for KindRecipe, nil otherwise.
	Recipe map[string]any
}

// Classify parses the normalized reply and determines its variant. Recipe
// fields beyond the type tag are carried opaquely; this layer validates
// nothing but the tag.
func Classify(raw string) Classification {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Classification{Kind: KindPlainFallback, Raw: raw, Content: raw}
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return Classification{Kind: KindUnknownShape, Raw: raw, Content: UnknownShapeReply}
	}

	switch obj["type"] {
	case "recipe":
		return Classification{Kind: KindRecipe, Raw: raw, Content: raw, Recipe: obj}
	case "text":
		content, ok := obj["content"].(string)
		if !ok {
			content = raw
		}
		return Classification{Kind: KindText, Raw: raw, Content: content}
	default:
		return Classification{Kind: KindUnknownShape, Raw: raw, Content: UnknownShapeReply}
	}
}
