package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health is a liveness probe. It reports healthy whenever the process is up,
// independent of store or provider health.
// GET /api/health
func (s *APIV1Service) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
