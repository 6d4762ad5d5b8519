package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/core/ports"
)

// RoleHandler serves the read-only role definition listing.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type roleResponse struct {
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Tag         string   `json:"tag"`
	Permissions []string `json:"permissions"`
	Members     int64    `json:"members"`
}

type listRolesResponse struct {
	Data []roleResponse `json:"data"`
}

// List handles GET /v1/admin/roles.
//
// @Summary      List role definitions
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listRolesResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	roles, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	data := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		data = append(data, roleResponse{
			Role:        string(r.Definition.Role),
			Description: r.Definition.Description,
			Tag:         r.Definition.Tag,
			Permissions: r.Definition.Permissions,
			Members:     r.Members,
		})
	}

	return c.JSON(http.StatusOK, listRolesResponse{Data: data})
}
