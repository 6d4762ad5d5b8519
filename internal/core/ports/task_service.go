package ports

import (
	"context"

	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/query"
)

// ListTasksInput carries raw list parameters plus the actor. The same
// input serves the admin listing, the team leader's monitor view and
// the user's "my tasks" view.
type ListTasksInput struct {
	Actor    domain.Actor
	Search   string
	Status   string
	Priority string
	Page     string
}

// TaskFilters echoes the normalized filter state.
type TaskFilters struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// TaskWithRefs pairs a task with the display names of its project and
// assignee (empty when unassigned).
type TaskWithRefs struct {
	Task     *domain.Task
	Project  string
	Assignee string
}

// ListTasksResult is one page of tasks plus pagination metadata.
type ListTasksResult struct {
	Tasks   []TaskWithRefs
	Meta    query.PageMeta
	Filters TaskFilters
}

// CreateTaskInput carries a validated create payload. AssignedTo, when
// set, must reference a user whose role can hold tasks.
type CreateTaskInput struct {
	Actor       domain.Actor
	Title       string
	Description string
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	ProjectID   string
	AssignedTo  string
}

// UpdateTaskInput carries a validated update payload.
type UpdateTaskInput struct {
	Actor       domain.Actor
	ID          string
	Title       string
	Description string
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	ProjectID   string
	AssignedTo  string
}

// Option is an (id, label) pair for form pickers.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskFormOptions holds the picker data for the task create/edit
// screens: all projects and every assignable user.
type TaskFormOptions struct {
	Projects  []Option
	Assignees []Option
}

// TaskService defines task use cases across all roles.
type TaskService interface {
	List(ctx context.Context, in ListTasksInput) (*ListTasksResult, error)
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Task, error)
	Update(ctx context.Context, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// UpdateStatus is the assignee-only status mutation used by the
	// "my tasks" flow.
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.TaskStatus) (*domain.Task, error)
	// FormOptions returns picker data for the task screens.
	FormOptions(ctx context.Context, actor domain.Actor) (*TaskFormOptions, error)
}
