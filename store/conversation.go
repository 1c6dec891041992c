package store

// TurnRole is the role of a single conversation turn.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
	TurnRoleSystem    TurnRole = "system"
)

// Turn is one message exchanged in a conversation. Ordering is significant:
// turns are stored and replayed in insertion order.
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Conversation is the durable document holding the full turn history of one
// session. At most one row exists per session id (unique constraint).
type Conversation struct {
	ID        int32
	SessionID string
	History   []Turn
	CreatedTs int64
	UpdatedTs int64
}

type FindConversation struct {
	ID        *int32
	SessionID *string
}

// UpsertConversation replaces the full history of the conversation keyed by
// SessionID, creating the row when absent.
type UpsertConversation struct {
	SessionID string
	History   []Turn
	UpdatedTs int64
}
