package v1

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/cookbot/internal/profile"
	"github.com/hrygo/cookbot/server/ai"
	apperrors "github.com/hrygo/cookbot/server/internal/errors"
	"github.com/hrygo/cookbot/server/internal/observability"
	"github.com/hrygo/cookbot/server/service/chat"
	"github.com/hrygo/cookbot/server/service/contact"
	"github.com/hrygo/cookbot/store"
)

// MaxRequestBodySize caps request bodies before any handler logic runs.
const MaxRequestBodySize = "64K"

// APIV1Service wires the HTTP surface to the chat, contact and store services.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	ChatService    *chat.Service
	ContactService *contact.Service
}

// NewAPIV1Service creates the API service. The chat service stays nil when the
// provider key is absent; its route then reports a deterministic
// configuration error instead of crashing at startup.
func NewAPIV1Service(ctx context.Context, profile *profile.Profile, store *store.Store) *APIV1Service {
	service := &APIV1Service{
		Profile:        profile,
		Store:          store,
		ContactService: contact.NewService(profile),
	}

	if profile.IsChatEnabled() {
		provider, err := ai.NewGeminiProvider(ctx, &ai.Config{
			APIKey: profile.GeminiAPIKey,
			Model:  profile.GeminiModel,
		})
		if err != nil {
			slog.Error("failed to initialize provider, chat disabled", "error", err)
		} else {
			service.ChatService = chat.NewService(store, provider)
		}
	} else {
		slog.Warn("COOKBOT_GEMINI_API_KEY not set, chat route disabled")
	}

	return service
}

// Register attaches middleware and routes to the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	corsConfig := middleware.DefaultCORSConfig
	if len(s.Profile.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.Profile.AllowedOrigins
	}

	apiGroup := echoServer.Group("/api",
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(MaxRequestBodySize),
		requestContextMiddleware,
	)

	apiGroup.POST("/chat", s.Chat)
	apiGroup.POST("/contact", s.Contact)
	apiGroup.POST("/save_recipe", s.SaveRecipe)
	apiGroup.GET("/my_recipes", s.MyRecipes)
	apiGroup.GET("/health", s.Health)
}

// requestContextMiddleware gives every request a correlating id (honoring
// X-Request-ID) and a request-scoped structured logger.
func requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var reqCtx *observability.RequestContext
		if requestID := c.Request().Header.Get("X-Request-ID"); requestID != "" {
			reqCtx = observability.NewRequestContextWithID(slog.Default(), requestID, c.Path())
		} else {
			reqCtx = observability.NewRequestContext(slog.Default(), c.Path())
		}

		ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)
		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)
		reqCtx.Info("request handled",
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
			slog.Int("status", c.Response().Status))
		return err
	}
}

// errorJSON maps a service error to its HTTP status and user-facing body. No
// internal error text leaks; causes stay in the server logs.
func errorJSON(c echo.Context, err error) error {
	svcErr := apperrors.FromError(err)

	if reqCtx, ok := observability.FromContext(c.Request().Context()); ok {
		reqCtx.Error("request failed", svcErr,
			slog.String(observability.LogFieldErrorCode, string(svcErr.Code)))
	} else {
		slog.Error("request failed", "error", svcErr)
	}

	body := map[string]any{"error": svcErr.Message}
	if models, ok := svcErr.Context["available_models"]; ok {
		body["available_models"] = models
	}
	return c.JSON(svcErr.HTTPStatus(), body)
}
