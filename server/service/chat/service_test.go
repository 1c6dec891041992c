package chat

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/cookbot/server/ai"
	apperrors "github.com/hrygo/cookbot/server/internal/errors"
	"github.com/hrygo/cookbot/store"
	storetest "github.com/hrygo/cookbot/store/test"
)

// fakeProvider records the turns it was handed and replays a canned response.
type fakeProvider struct {
	response any
	err      error
	calls    int
	history  []ai.ProviderTurn
	message  string
}

func (f *fakeProvider) Generate(_ context.Context, history []ai.ProviderTurn, message string) (any, error) {
	f.calls++
	f.history = history
	f.message = message
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

// brokenStore fails every operation, standing in for an unreachable database.
type brokenStore struct{}

func (brokenStore) GetConversation(context.Context, *store.FindConversation) (*store.Conversation, error) {
	return nil, errors.New("store is down")
}

func (brokenStore) UpsertConversation(context.Context, *store.UpsertConversation) (*store.Conversation, error) {
	return nil, errors.New("store is down")
}

func textResponse(content string) any {
	return map[string]any{"text": content}
}

// sdkResponse mimics the provider SDK's response type with a Text() accessor.
type sdkResponse struct {
	text string
}

func (r *sdkResponse) Text() string { return r.text }

func TestChatRejectsEmptyMessage(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewService(brokenStore{}, provider)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Chat(context.Background(), "s", message)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument))
	}
	// Neither the provider nor the store may be touched.
	assert.Zero(t, provider.calls)
}

func TestChatGeneratesSessionID(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	provider := &fakeProvider{response: textResponse(`{"type":"text","content":"hi"}`)}
	svc := NewService(ts, provider)

	result, err := svc.Chat(ctx, "  ", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "hi", result.Response)
	assert.False(t, result.IsRecipe)

	// A follow-up with the returned id continues the same conversation.
	result2, err := svc.Chat(ctx, result.SessionID, "more")
	require.NoError(t, err)
	assert.Equal(t, result.SessionID, result2.SessionID)

	conversation, err := ts.GetConversation(ctx, &store.FindConversation{SessionID: &result.SessionID})
	require.NoError(t, err)
	require.NotNil(t, conversation)
	assert.Len(t, conversation.History, 4)
}

func TestChatProviderTurnMapping(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	sessionID := "mapping"
	_, err := ts.UpsertConversation(ctx, &store.UpsertConversation{
		SessionID: sessionID,
		History: []store.Turn{
			{Role: store.TurnRoleSystem, Content: "stale instruction"},
			{Role: store.TurnRoleUser, Content: "earlier question"},
			{Role: store.TurnRoleAssistant, Content: "earlier answer"},
		},
	})
	require.NoError(t, err)

	provider := &fakeProvider{response: textResponse(`{"type":"text","content":"ok"}`)}
	svc := NewService(ts, provider)

	_, err = svc.Chat(ctx, sessionID, "new question")
	require.NoError(t, err)

	// Instruction first, stored system turns dropped, assistant mapped to model.
	require.Len(t, provider.history, 3)
	assert.Equal(t, ai.ProviderTurn{Role: "user", Text: ai.SystemPrompt}, provider.history[0])
	assert.Equal(t, ai.ProviderTurn{Role: "user", Text: "earlier question"}, provider.history[1])
	assert.Equal(t, ai.ProviderTurn{Role: "model", Text: "earlier answer"}, provider.history[2])
	assert.Equal(t, "new question", provider.message)
}

func TestChatRecipeReply(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	raw := `{"type":"recipe","title":"Pancakes","ingredients":["flour"],"instructions":["mix"]}`
	provider := &fakeProvider{response: textResponse(raw)}
	svc := NewService(ts, provider)

	result, err := svc.Chat(ctx, "r", "pancakes please")
	require.NoError(t, err)
	assert.True(t, result.IsRecipe)
	assert.Equal(t, raw, result.Response)
	require.NotNil(t, result.RecipeData)
	assert.Equal(t, "Pancakes", result.RecipeData["title"])

	// The raw text is what gets persisted as the assistant turn.
	sessionID := "r"
	conversation, err := ts.GetConversation(ctx, &store.FindConversation{SessionID: &sessionID})
	require.NoError(t, err)
	require.Len(t, conversation.History, 2)
	assert.Equal(t, raw, conversation.History[1].Content)
}

func TestChatPlainFallback(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	provider := &fakeProvider{response: textResponse("just plain prose")}
	svc := NewService(ts, provider)

	result, err := svc.Chat(ctx, "p", "hello")
	require.NoError(t, err)
	assert.False(t, result.IsRecipe)
	assert.Equal(t, "just plain prose", result.Response)
}

func TestChatUnknownShape(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	provider := &fakeProvider{response: textResponse(`{"type":"other"}`)}
	svc := NewService(ts, provider)

	result, err := svc.Chat(ctx, "u", "hello")
	require.NoError(t, err)
	assert.Equal(t, ai.UnknownShapeReply, result.Response)
}

func TestChatProviderFailureNotPersisted(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	provider := &fakeProvider{err: apperrors.PermissionDenied("denied", nil)}
	svc := NewService(ts, provider)

	sessionID := "failed"
	_, err := svc.Chat(ctx, sessionID, "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePermissionDenied))

	conversation, err := ts.GetConversation(ctx, &store.FindConversation{SessionID: &sessionID})
	require.NoError(t, err)
	assert.Nil(t, conversation)
}

func TestChatSurvivesBrokenStore(t *testing.T) {
	provider := &fakeProvider{response: textResponse(`{"type":"text","content":"still here"}`)}
	svc := NewService(brokenStore{}, provider)

	// History read and persistence both fail; the reply still goes out.
	result, err := svc.Chat(context.Background(), "s", "hello")
	require.NoError(t, err)
	assert.Equal(t, "still here", result.Response)
}

func TestChatEmptyProviderText(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	provider := &fakeProvider{response: nil}
	svc := NewService(ts, provider)

	sessionID := "empty"
	_, err := svc.Chat(ctx, sessionID, "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProviderUnavailable))

	// The empty assistant turn is still persisted, matching the write-then-
	// classify ordering.
	conversation, err := ts.GetConversation(ctx, &store.FindConversation{SessionID: &sessionID})
	require.NoError(t, err)
	require.NotNil(t, conversation)
	require.Len(t, conversation.History, 2)
	assert.Equal(t, "", conversation.History[1].Content)
}

func TestChatBlockedSDKReply(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	// A blocked reply surfaces as an SDK response whose Text() is empty. The
	// turn must fail as unavailable, not echo a stringified struct to the user.
	provider := &fakeProvider{response: &sdkResponse{}}
	svc := NewService(ts, provider)

	sessionID := "blocked"
	_, err := svc.Chat(ctx, sessionID, "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeProviderUnavailable))

	conversation, err := ts.GetConversation(ctx, &store.FindConversation{SessionID: &sessionID})
	require.NoError(t, err)
	require.NotNil(t, conversation)
	require.Len(t, conversation.History, 2)
	assert.Equal(t, "", conversation.History[1].Content)
}
