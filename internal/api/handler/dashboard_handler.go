package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/core/ports"
)

// DashboardHandler serves the admin landing page aggregates.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	TotalUsers       int64             `json:"total_users"`
	ActiveProjects   int64             `json:"active_projects"`
	PendingTasks     int64             `json:"pending_tasks"`
	CompletedTasks   int64             `json:"completed_tasks"`
	RecentProjects   []projectResponse `json:"recent_projects"`
	TaskDistribution map[string]int64  `json:"task_distribution"`
}

// Stats handles GET /v1/admin/dashboard.
//
// @Summary      Admin dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	recent := make([]projectResponse, 0, len(stats.RecentProjects))
	for _, p := range stats.RecentProjects {
		recent = append(recent, toProjectResponse(p))
	}

	distribution := make(map[string]int64, len(stats.TaskDistribution))
	for status, n := range stats.TaskDistribution {
		distribution[string(status)] = n
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalUsers:       stats.TotalUsers,
		ActiveProjects:   stats.ActiveProjects,
		PendingTasks:     stats.PendingTasks,
		CompletedTasks:   stats.CompletedTasks,
		RecentProjects:   recent,
		TaskDistribution: distribution,
	})
}
