package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/cookbot/server/internal/errors"
	"github.com/hrygo/cookbot/store"
)

// SaveRecipeRequest is the body of POST /api/save_recipe.
type SaveRecipeRequest struct {
	SessionID  string          `json:"session_id"`
	RecipeData json.RawMessage `json:"recipe_data"`
}

// SaveRecipeResponse is the success body of POST /api/save_recipe.
type SaveRecipeResponse struct {
	Success  bool   `json:"success"`
	RecipeID string `json:"recipe_id"`
	Message  string `json:"message"`
}

// RecipeView is one saved recipe in the GET /api/my_recipes listing.
type RecipeView struct {
	RecipeID   string         `json:"recipe_id"`
	SessionID  string         `json:"session_id"`
	RecipeData map[string]any `json:"recipe_data"`
	SavedAt    string         `json:"saved_at"`
}

// MyRecipesResponse is the success body of GET /api/my_recipes.
type MyRecipesResponse struct {
	Recipes []RecipeView `json:"recipes"`
}

// SaveRecipe stores one immutable recipe for the session.
// POST /api/save_recipe
func (s *APIV1Service) SaveRecipe(c echo.Context) error {
	var req SaveRecipeRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, apperrors.InvalidArgument("Invalid request body"))
	}

	if strings.TrimSpace(req.SessionID) == "" || len(req.RecipeData) == 0 || string(req.RecipeData) == "null" {
		return errorJSON(c, apperrors.InvalidArgument("Missing required session_id or recipe_data"))
	}

	recipe, err := s.Store.CreateRecipe(c.Request().Context(), strings.TrimSpace(req.SessionID), string(req.RecipeData))
	if err != nil {
		return errorJSON(c, apperrors.StoreUnavailable("Failed to save recipe", err))
	}

	return c.JSON(http.StatusOK, SaveRecipeResponse{
		Success:  true,
		RecipeID: recipe.RecipeID,
		Message:  "Recipe saved successfully!",
	})
}

// MyRecipes lists the session's saved recipes, most recent first.
// GET /api/my_recipes?session_id=...
func (s *APIV1Service) MyRecipes(c echo.Context) error {
	sessionID := strings.TrimSpace(c.QueryParam("session_id"))
	if sessionID == "" {
		return errorJSON(c, apperrors.InvalidArgument("Session ID required"))
	}

	list, err := s.Store.ListRecipes(c.Request().Context(), &store.FindRecipe{SessionID: &sessionID})
	if err != nil {
		return errorJSON(c, apperrors.StoreUnavailable("Failed to retrieve recipes", err))
	}

	recipes := make([]RecipeView, 0, len(list))
	for _, recipe := range list {
		view := RecipeView{
			RecipeID:  recipe.RecipeID,
			SessionID: recipe.SessionID,
			SavedAt:   time.Unix(recipe.SavedTs, 0).UTC().Format(time.RFC3339),
		}
		// Recipe data is opaque; a record that fails to decode still lists.
		if err := json.Unmarshal([]byte(recipe.RecipeData), &view.RecipeData); err != nil {
			view.RecipeData = map[string]any{}
		}
		recipes = append(recipes, view)
	}

	return c.JSON(http.StatusOK, MyRecipesResponse{Recipes: recipes})
}
