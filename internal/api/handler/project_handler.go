package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/api/metrics"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
)

// ProjectHandler serves the admin project endpoints and the role-scoped
// project listings. Visibility is decided in the service layer, so the
// same handler methods back every route group.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /v1/admin/projects, /v1/team/projects and
// /v1/client/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring match on project name"
// @Param        status  query     string  false  "Status filter (pending, active, on_hold, completed, all)"
// @Param        page    query     int     false  "Page number (10 rows per page)"
// @Success      200     {object}  listProjectsResponse
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /v1/admin/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListProjectsInput{
		Actor:  actor,
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Page:   c.QueryParam("page"),
	})
	if err != nil {
		return err
	}

	data := make([]projectResponse, 0, len(result.Projects))
	for _, p := range result.Projects {
		data = append(data, toProjectResponse(p))
	}

	return c.JSON(http.StatusOK, listProjectsResponse{
		Data:       data,
		Pagination: toPaginationResponse(result.Meta),
		Filters:    result.Filters,
	})
}

// Create handles POST /v1/admin/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectMessageResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Actor:       actor,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		DueDate:     parseDueDate(req.DueDate),
	})
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("projects", "create").Inc()

	return c.JSON(http.StatusCreated, projectMessageResponse{
		Message: "Project created successfully.",
		Project: toProjectResponse(ports.ProjectWithOwner{Project: project, Owner: actor.Name}),
	})
}

// Get handles GET /v1/admin/projects/:id (and the scoped variants).
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectResponse(ports.ProjectWithOwner{Project: project}))
}

// Update handles PUT /v1/admin/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Project details"
// @Success      200   {object}  projectMessageResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.Update(c.Request().Context(), ports.UpdateProjectInput{
		Actor:       actor,
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		DueDate:     parseDueDate(req.DueDate),
	})
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("projects", "update").Inc()

	return c.JSON(http.StatusOK, projectMessageResponse{
		Message: "Project updated successfully.",
		Project: toProjectResponse(ports.ProjectWithOwner{Project: project}),
	})
}

// Delete handles DELETE /v1/admin/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("projects", "delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Project deleted successfully."})
}
