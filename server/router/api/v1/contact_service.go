package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/cookbot/server/internal/errors"
	"github.com/hrygo/cookbot/server/service/contact"
)

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the success body of POST /api/contact.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Contact relays a contact-form submission by email.
// POST /api/contact
func (s *APIV1Service) Contact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, apperrors.InvalidArgument("Invalid request body"))
	}

	if err := s.ContactService.Submit(c.Request().Context(), contact.Form{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, ContactResponse{
		Success: true,
		Message: "Message sent successfully! We will get back to you soon.",
	})
}
