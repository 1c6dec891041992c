package store

// Recipe is an immutable saved recipe. RecipeID is server-generated and
// unique; many recipes may reference the same session.
type Recipe struct {
	ID         int32
	RecipeID   string
	SessionID  string
	RecipeData string // JSON string, opaque to the store
	SavedTs    int64
}

type FindRecipe struct {
	RecipeID  *string
	SessionID *string
}
