package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	// Conversation model related methods.
	UpsertConversation(ctx context.Context, upsert *UpsertConversation) (*Conversation, error)
	GetConversation(ctx context.Context, find *FindConversation) (*Conversation, error)

	// Recipe model related methods.
	CreateRecipe(ctx context.Context, create *Recipe) (*Recipe, error)
	ListRecipes(ctx context.Context, find *FindRecipe) ([]*Recipe, error)
}
