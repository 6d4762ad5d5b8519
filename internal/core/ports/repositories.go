package ports

import (
	"context"
	"time"

	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/query"
)

// UserRepository defines persistence operations for users. List executes
// a normalized query and returns the page of rows plus the total match
// count.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, q query.UserList) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error

	// EmailTaken reports whether email belongs to a user other than
	// excludeID (pass "" on create).
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	// CountByRole returns the number of users per role; roles with no
	// members are absent from the map.
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
	Count(ctx context.Context) (int64, error)
	// ListAssignable returns users whose role can hold tasks, for the
	// task form assignee picker.
	ListAssignable(ctx context.Context) ([]*domain.User, error)
	// NamesByID resolves display names for a set of user ids.
	NamesByID(ctx context.Context, ids []string) (map[string]string, error)
}

// ProjectRepository defines persistence operations for projects.
// A non-empty createdBy on List restricts rows to that creator; it is
// applied before the query's own filters.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, q query.ProjectList, createdBy string) ([]*domain.Project, int64, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error

	IDsByCreator(ctx context.Context, createdBy string) ([]string, error)
	CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error)
	// Recent returns the most recently created projects, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Project, error)
	// ListNames returns id and name for every project, for pickers.
	ListNames(ctx context.Context) ([]*domain.Project, error)
}

// TaskScope is the row-level visibility restriction applied to task
// queries before any user-supplied filter. The zero value means
// unrestricted (admin).
type TaskScope struct {
	// ProjectIDs, when non-nil, limits tasks to these projects. An empty
	// non-nil slice matches nothing.
	ProjectIDs []string
	// AssignedTo, when non-empty, limits tasks to this assignee.
	AssignedTo string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, q query.TaskList, scope TaskScope) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	Delete(ctx context.Context, id string) error

	// CountGroupByStatus returns task counts per status; statuses with
	// no tasks are absent from the map.
	CountGroupByStatus(ctx context.Context) (map[domain.TaskStatus]int64, error)
}

// TokenRevoker abstracts the logout denylist (Redis). Revoked token ids
// stay listed until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
