package ports

import (
	"context"

	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/query"
)

// ListUsersInput carries the raw, untrusted list parameters together
// with the requesting actor. Role and Page arrive as strings straight
// from the query string; the query builder validates them.
type ListUsersInput struct {
	Actor  domain.Actor
	Search string
	Role   string
	Page   string
}

// UserFilters echoes the normalized filter state back to the caller so
// the UI can reflect it without re-deriving anything.
type UserFilters struct {
	Search string `json:"search"`
	Role   string `json:"role"`
}

// ListUsersResult is one page of users plus pagination metadata.
type ListUsersResult struct {
	Users   []*domain.User
	Meta    query.PageMeta
	Filters UserFilters
}

// CreateUserInput carries a validated create payload. Password is the
// plaintext from the form; the service hashes it before it ever reaches
// the repository.
type CreateUserInput struct {
	Actor    domain.Actor
	Name     string
	Email    string
	Role     domain.Role
	Password string
}

// UpdateUserInput carries a validated update payload. An empty Password
// keeps the stored credential unchanged.
type UpdateUserInput struct {
	Actor    domain.Actor
	ID       string
	Name     string
	Email    string
	Role     domain.Role
	Password string
}

// UserService defines the admin user management use cases.
type UserService interface {
	List(ctx context.Context, in ListUsersInput) (*ListUsersResult, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
