package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/cookbot/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate ensures the schema exists. Safe to call on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// UpsertConversation replaces the stored history for the session, creating the
// conversation row when absent.
func (s *Store) UpsertConversation(ctx context.Context, upsert *UpsertConversation) (*Conversation, error) {
	if strings.TrimSpace(upsert.SessionID) == "" {
		return nil, errors.New("session id is required")
	}
	if upsert.UpdatedTs == 0 {
		upsert.UpdatedTs = time.Now().Unix()
	}
	return s.driver.UpsertConversation(ctx, upsert)
}

// GetConversation returns the conversation for the session, or nil when no
// conversation has been stored yet.
func (s *Store) GetConversation(ctx context.Context, find *FindConversation) (*Conversation, error) {
	return s.driver.GetConversation(ctx, find)
}

// CreateRecipe inserts an immutable recipe record with a fresh server-generated
// id. On the astronomically unlikely id collision it retries exactly once with
// a new id before giving up.
func (s *Store) CreateRecipe(ctx context.Context, sessionID string, recipeData string) (*Recipe, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}
	create := &Recipe{
		RecipeID:   shortuuid.New(),
		SessionID:  sessionID,
		RecipeData: recipeData,
		SavedTs:    time.Now().Unix(),
	}
	recipe, err := s.driver.CreateRecipe(ctx, create)
	if err != nil && isDuplicateKey(err) {
		slog.Warn("recipe id collision, retrying with a fresh id", "session_id", sessionID)
		create.RecipeID = shortuuid.New()
		recipe, err = s.driver.CreateRecipe(ctx, create)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create recipe for session %s", sessionID)
	}
	return recipe, nil
}

// ListRecipes returns the recipes saved for the session, most recent first.
func (s *Store) ListRecipes(ctx context.Context, find *FindRecipe) ([]*Recipe, error) {
	return s.driver.ListRecipes(ctx, find)
}

// isDuplicateKey reports whether err is a unique-constraint violation from
// either supported driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") // postgres
}
