package handler

import (
	"time"

	"github.com/taskhub/project-system/internal/core/ports"
)

// --- Request / Response types ---

type createProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Status      string `json:"status"      validate:"required,oneof=pending active on_hold completed"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

type updateProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Status      string `json:"status"      validate:"required,oneof=pending active on_hold completed"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedBy   string    `json:"created_by"`
	Owner       string    `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProjectResponse(p ports.ProjectWithOwner) projectResponse {
	resp := projectResponse{
		ID:          p.Project.ID,
		Name:        p.Project.Name,
		Description: p.Project.Description,
		Status:      string(p.Project.Status),
		CreatedBy:   p.Project.CreatedBy,
		Owner:       p.Owner,
		CreatedAt:   p.Project.CreatedAt,
	}
	if p.Project.DueDate != nil {
		resp.DueDate = p.Project.DueDate.Format("2006-01-02")
	}
	return resp
}

type listProjectsResponse struct {
	Data       []projectResponse    `json:"data"`
	Pagination paginationResponse   `json:"pagination"`
	Filters    ports.ProjectFilters `json:"filters"`
}

type projectMessageResponse struct {
	Message string          `json:"message"`
	Project projectResponse `json:"project"`
}

// parseDueDate converts the validated YYYY-MM-DD form value into a
// nullable timestamp. The datetime tag already guarantees the format.
func parseDueDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
