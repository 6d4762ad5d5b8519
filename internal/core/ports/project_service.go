package ports

import (
	"context"
	"time"

	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/query"
)

// ListProjectsInput carries raw list parameters plus the actor. The
// same input serves the admin, team and client listings; the service
// derives the visibility scope from the actor's role.
type ListProjectsInput struct {
	Actor  domain.Actor
	Search string
	Status string
	Page   string
}

// ProjectFilters echoes the normalized filter state.
type ProjectFilters struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

// ProjectWithOwner pairs a project with its creator's display name.
type ProjectWithOwner struct {
	Project *domain.Project
	Owner   string
}

// ListProjectsResult is one page of projects plus pagination metadata.
type ListProjectsResult struct {
	Projects []ProjectWithOwner
	Meta     query.PageMeta
	Filters  ProjectFilters
}

// CreateProjectInput carries a validated create payload. The creator is
// always the authenticated actor; ownership never transfers.
type CreateProjectInput struct {
	Actor       domain.Actor
	Name        string
	Description string
	Status      domain.ProjectStatus
	DueDate     *time.Time
}

// UpdateProjectInput carries a validated update payload.
type UpdateProjectInput struct {
	Actor       domain.Actor
	ID          string
	Name        string
	Description string
	Status      domain.ProjectStatus
	DueDate     *time.Time
}

// ProjectService defines project use cases across all roles.
type ProjectService interface {
	List(ctx context.Context, in ListProjectsInput) (*ListProjectsResult, error)
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	// Get loads one project within the actor's visibility scope.
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error)
	Update(ctx context.Context, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
