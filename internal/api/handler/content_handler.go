package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContentHandler serves the role-gated probe endpoints. They carry no data;
// their only purpose is to let clients and smoke tests confirm which access
// level a token grants.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

// Public requires no authentication.
func (h *ContentHandler) Public(c echo.Context) error {
	return c.String(http.StatusOK, "Public content.")
}

// User requires any authenticated role.
func (h *ContentHandler) User(c echo.Context) error {
	return c.String(http.StatusOK, "User content.")
}

// Moderator requires the moderator role.
func (h *ContentHandler) Moderator(c echo.Context) error {
	return c.String(http.StatusOK, "Moderator board.")
}

// Admin requires the admin role.
func (h *ContentHandler) Admin(c echo.Context) error {
	return c.String(http.StatusOK, "Admin board.")
}
