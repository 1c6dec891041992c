// Package ai wraps the hosted Gemini chat API behind a small provider
// interface and turns its loosely-typed responses into the strict two-variant
// reply protocol the rest of the backend speaks.
package ai

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genai"

	apperrors "github.com/hrygo/cookbot/server/internal/errors"
)

// ProviderTurn is the shape the provider expects: assistant turns become role
// "model", everything else passes through, and content rides as one text part.
type ProviderTurn struct {
	Role string // "user" or "model"
	Text string
}

// Provider is the LLM provider client used by the conversation service.
type Provider interface {
	// Generate sends the turn history plus the new user message and returns
	// the provider's response as an opaque value for the normalizer.
	Generate(ctx context.Context, history []ProviderTurn, message string) (any, error)
}

// Config holds the provider configuration.
type Config struct {
	APIKey string
	Model  string
}

// GeminiProvider calls the Gemini API. No retries: failures are classified and
// reported once per request.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, cfg *Config) (*GeminiProvider, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, apperrors.NotConfigured("Server misconfigured: missing COOKBOT_GEMINI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.ProviderUnavailable("Failed to initialize model. See logs.", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, history []ProviderTurn, message string) (any, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: message}},
	})

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.7),
		TopP:             genai.Ptr[float32](1),
		TopK:             genai.Ptr[float32](1),
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, p.classifyError(ctx, err)
	}
	return resp, nil
}

// classifyError maps a provider failure onto the user-facing taxonomy. The
// not-found path is enriched with a best-effort model listing.
func (p *GeminiProvider) classifyError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 404:
			svcErr := apperrors.ModelNotFound(p.model, err)
			if models := p.listModelsSafe(ctx); models != nil {
				svcErr = svcErr.WithContext("available_models", models)
			}
			return svcErr
		case 401, 403:
			return apperrors.PermissionDenied("API key permission denied. Please rotate key.", err)
		}
	}
	return apperrors.ProviderUnavailable("Error generating response from model", err)
}

// listModelsSafe enumerates available model names, returning nil on any
// failure rather than compounding the original error.
func (p *GeminiProvider) listModelsSafe(ctx context.Context) []string {
	var names []string
	for model, err := range p.client.Models.All(ctx) {
		if err != nil {
			slog.Error("failed to list models", "error", err)
			return nil
		}
		names = append(names, model.Name)
	}
	return names
}
