package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/identity-service/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type roleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns the seeded role enumeration. Admin only.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   roleResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	entries, err := h.roleService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]roleResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, roleResponse{ID: e.ID, Name: string(e.Name)})
	}
	return c.JSON(http.StatusOK, resp)
}
