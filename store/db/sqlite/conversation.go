package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/hrygo/cookbot/store"
)

func (d *DB) UpsertConversation(ctx context.Context, upsert *store.UpsertConversation) (*store.Conversation, error) {
	history, err := json.Marshal(upsert.History)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal history")
	}

	stmt := `INSERT INTO conversation (session_id, history, created_ts, updated_ts)
		VALUES (` + placeholders(4) + `)
		ON CONFLICT(session_id) DO UPDATE SET history = excluded.history, updated_ts = excluded.updated_ts
		RETURNING id, session_id, history, created_ts, updated_ts`

	conversation := &store.Conversation{}
	var raw string
	if err := d.db.QueryRowContext(ctx, stmt, upsert.SessionID, string(history), upsert.UpdatedTs, upsert.UpdatedTs).Scan(
		&conversation.ID, &conversation.SessionID, &raw, &conversation.CreatedTs, &conversation.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert conversation")
	}
	if err := json.Unmarshal([]byte(raw), &conversation.History); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal history")
	}
	return conversation, nil
}

func (d *DB) GetConversation(ctx context.Context, find *store.FindConversation) (*store.Conversation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.SessionID != nil {
		where, args = append(where, "session_id = "+placeholder(len(args)+1)), append(args, *find.SessionID)
	}

	query := `SELECT id, session_id, history, created_ts, updated_ts FROM conversation WHERE ` + joinAnd(where)
	conversation := &store.Conversation{}
	var raw string
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&conversation.ID, &conversation.SessionID, &raw, &conversation.CreatedTs, &conversation.UpdatedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get conversation")
	}
	if err := json.Unmarshal([]byte(raw), &conversation.History); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal history")
	}
	return conversation, nil
}
