package handler

import (
	"time"

	"github.com/taskhub/project-system/internal/core/ports"
)

// --- Request / Response types ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
	Status      string `json:"status"      validate:"required,oneof=todo in_progress review done"`
	ProjectID   string `json:"project_id"  validate:"required"`
	AssignedTo  string `json:"assigned_to" validate:"omitempty"`
}

type updateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
	Status      string `json:"status"      validate:"required,oneof=todo in_progress review done"`
	ProjectID   string `json:"project_id"  validate:"required"`
	AssignedTo  string `json:"assigned_to" validate:"omitempty"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress review done"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	ProjectID   string    `json:"project_id"`
	Project     string    `json:"project,omitempty"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTaskResponse(t ports.TaskWithRefs) taskResponse {
	return taskResponse{
		ID:          t.Task.ID,
		Title:       t.Task.Title,
		Description: t.Task.Description,
		Priority:    string(t.Task.Priority),
		Status:      string(t.Task.Status),
		ProjectID:   t.Task.ProjectID,
		Project:     t.Project,
		AssignedTo:  t.Task.AssignedTo,
		Assignee:    t.Assignee,
		CreatedAt:   t.Task.CreatedAt,
	}
}

type listTasksResponse struct {
	Data       []taskResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
	Filters    ports.TaskFilters  `json:"filters"`
}

type taskMessageResponse struct {
	Message string       `json:"message"`
	Task    taskResponse `json:"task"`
}

type taskFormOptionsResponse struct {
	Projects  []ports.Option `json:"projects"`
	Assignees []ports.Option `json:"assignees"`
}
