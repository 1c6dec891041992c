// Package chat orchestrates one conversation turn: it replays the stored
// history to the LLM provider, normalizes and classifies the reply, and
// appends the new turn pair to the session's durable history.
//
// Persistence is fail-open by design: a broken store never blocks a provider
// reply. The read-modify-write of history is not transactional; when two
// requests race on the same session the later write wins.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hrygo/cookbot/server/ai"
	apperrors "github.com/hrygo/cookbot/server/internal/errors"
	"github.com/hrygo/cookbot/server/internal/observability"
	"github.com/hrygo/cookbot/store"
)

// Store is the interface for store operations needed by the chat service.
type Store interface {
	GetConversation(ctx context.Context, find *store.FindConversation) (*store.Conversation, error)
	UpsertConversation(ctx context.Context, upsert *store.UpsertConversation) (*store.Conversation, error)
}

// Result is the outcome of one chat turn, ready for the HTTP layer.
type Result struct {
	SessionID  string
	Response   string
	IsRecipe   bool
	RecipeData map[string]any
}

// Service is the conversation orchestrator.
type Service struct {
	store    Store
	provider ai.Provider
}

// NewService creates a new chat service.
func NewService(store Store, provider ai.Provider) *Service {
	return &Service{store: store, provider: provider}
}

// Chat runs one conversation turn. The returned error is always a
// *errors.ServiceError; on error nothing has been persisted for this turn.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (*Result, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.InvalidArgument("Message cannot be empty")
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	history := s.loadHistory(ctx, sessionID)

	raw, err := s.provider.Generate(ctx, providerHistory(history), message)
	if err != nil {
		return nil, apperrors.FromError(err)
	}

	text := ai.ExtractText(raw)

	// Persist the raw normalized text as the assistant turn regardless of how
	// it classifies below. Failures are logged, never surfaced.
	s.persistTurnPair(ctx, sessionID, message, text)

	if text == "" {
		return nil, apperrors.ProviderUnavailable("I'm having trouble right now. Please try again in a moment.", nil)
	}

	classification := ai.Classify(text)
	result := &Result{
		SessionID: sessionID,
		Response:  classification.Content,
	}
	if classification.Kind == ai.KindRecipe {
		result.IsRecipe = true
		result.RecipeData = classification.Recipe
	}
	return result, nil
}

// loadHistory reads the stored history for the session, treating absence and
// read failures alike as an empty history.
func (s *Service) loadHistory(ctx context.Context, sessionID string) []store.Turn {
	conversation, err := s.store.GetConversation(ctx, &store.FindConversation{SessionID: &sessionID})
	if err != nil {
		logCtx(ctx).Warn("failed to load conversation history",
			slog.String(observability.LogFieldSessionID, sessionID),
			slog.String("error", err.Error()))
		return nil
	}
	if conversation == nil {
		return nil
	}
	return conversation.History
}

// providerHistory maps stored turns to the provider shape: system turns are
// dropped (the system instruction is injected fresh each request), assistant
// becomes "model", and the fixed instruction is prepended as a user turn.
func providerHistory(history []store.Turn) []ai.ProviderTurn {
	turns := make([]ai.ProviderTurn, 0, len(history)+1)
	turns = append(turns, ai.ProviderTurn{Role: "user", Text: ai.SystemPrompt})
	for _, turn := range history {
		if turn.Role == store.TurnRoleSystem {
			continue
		}
		role := string(turn.Role)
		if turn.Role == store.TurnRoleAssistant {
			role = "model"
		}
		turns = append(turns, ai.ProviderTurn{Role: role, Text: strings.TrimSpace(turn.Content)})
	}
	return turns
}

// persistTurnPair re-reads the current history and appends the new user and
// assistant turns. The re-read narrows but does not close the lost-update
// window for concurrent requests on one session.
func (s *Service) persistTurnPair(ctx context.Context, sessionID, userMessage, assistantText string) {
	history := s.loadHistory(ctx, sessionID)
	history = append(history,
		store.Turn{Role: store.TurnRoleUser, Content: userMessage},
		store.Turn{Role: store.TurnRoleAssistant, Content: assistantText},
	)
	if _, err := s.store.UpsertConversation(ctx, &store.UpsertConversation{
		SessionID: sessionID,
		History:   history,
	}); err != nil {
		logCtx(ctx).Error("failed to persist conversation",
			slog.String(observability.LogFieldSessionID, sessionID),
			slog.String("error", err.Error()))
	}
}

// logCtx returns the request-scoped logger when one is present.
func logCtx(ctx context.Context) *slog.Logger {
	if reqCtx, ok := observability.FromContext(ctx); ok {
		return reqCtx.Logger.With(slog.String(observability.LogFieldRequestID, reqCtx.RequestID))
	}
	return slog.Default()
}
