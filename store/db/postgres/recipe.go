package postgres

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/cookbot/store"
)

func (d *DB) CreateRecipe(ctx context.Context, create *store.Recipe) (*store.Recipe, error) {
	fields := []string{"recipe_id", "session_id", "recipe_data", "saved_ts"}
	args := []any{create.RecipeID, create.SessionID, create.RecipeData, create.SavedTs}

	stmt := `INSERT INTO recipe (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		// Keep the raw driver error so callers can detect unique violations.
		return nil, err
	}
	return create, nil
}

func (d *DB) ListRecipes(ctx context.Context, find *store.FindRecipe) ([]*store.Recipe, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.RecipeID != nil {
		where, args = append(where, "recipe_id = "+placeholder(len(args)+1)), append(args, *find.RecipeID)
	}
	if find.SessionID != nil {
		where, args = append(where, "session_id = "+placeholder(len(args)+1)), append(args, *find.SessionID)
	}

	query := `SELECT id, recipe_id, session_id, recipe_data, saved_ts FROM recipe WHERE ` + strings.Join(where, " AND ") + ` ORDER BY saved_ts DESC, id DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}
	defer rows.Close()

	list := make([]*store.Recipe, 0)
	for rows.Next() {
		recipe := &store.Recipe{}
		if err := rows.Scan(&recipe.ID, &recipe.RecipeID, &recipe.SessionID, &recipe.RecipeData, &recipe.SavedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan recipe")
		}
		list = append(list, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate recipes")
	}
	return list, nil
}
