package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/cookbot/server/internal/errors"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Response   string         `json:"response"`
	SessionID  string         `json:"session_id"`
	IsRecipe   bool           `json:"is_recipe"`
	RecipeData map[string]any `json:"recipe_data,omitempty"`
}

// Chat handles one conversation turn.
// POST /api/chat
func (s *APIV1Service) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, apperrors.InvalidArgument("Invalid request body"))
	}

	// Empty input is rejected before configuration is even considered, so an
	// unconfigured server still answers bad requests with 400.
	if strings.TrimSpace(req.Message) == "" {
		return errorJSON(c, apperrors.InvalidArgument("Message cannot be empty"))
	}

	if s.ChatService == nil {
		return errorJSON(c, apperrors.NotConfigured("Server misconfigured: missing COOKBOT_GEMINI_API_KEY"))
	}

	result, err := s.ChatService.Chat(c.Request().Context(), req.SessionID, req.Message)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:   result.Response,
		SessionID:  result.SessionID,
		IsRecipe:   result.IsRecipe,
		RecipeData: result.RecipeData,
	})
}
