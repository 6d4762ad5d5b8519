package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
	"github.com/taskhub/project-system/internal/core/query"
)

// UserService implements admin user management. Every operation is
// gated by the authorization policy before validation and before any
// repository access.
type UserService struct {
	repo   ports.UserRepository
	policy *authz.Policy
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, policy *authz.Policy, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, policy: policy, logger: logger}
}

// List returns one page of users matching the search and role filter,
// newest first, plus pagination metadata and the normalized filters.
func (s *UserService) List(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceUser, authz.ActionList) {
		return nil, domain.ErrForbidden
	}

	q, err := query.BuildUserList(in.Search, in.Role, in.Page)
	if err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.ListUsersResult{
		Users:   users,
		Meta:    query.NewPageMeta(q.Page, total, len(users)),
		Filters: ports.UserFilters{Search: q.Search, Role: filterEcho(string(q.Role))},
	}, nil
}

// Create stores a new user. The plaintext password is bcrypt-hashed
// here; it never reaches the repository.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceUser, authz.ActionCreate) {
		return nil, domain.ErrForbidden
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidFilter, in.Role)
	}

	taken, err := s.repo.EmailTaken(ctx, in.Email, "")
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Get loads a single user for the edit screen.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if !s.policy.CanPerform(actor.Role, authz.ResourceUser, authz.ActionUpdate) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies the full edit payload in one write. Email uniqueness
// is re-checked excluding the row being updated; an empty password
// keeps the stored hash.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceUser, authz.ActionUpdate) {
		return nil, domain.ErrForbidden
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidFilter, in.Role)
	}

	user, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailTaken(ctx, in.Email, user.ID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

// Delete removes a user. Self-protection applies after the policy
// check: an actor may never delete their own account.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !s.policy.CanPerform(actor.Role, authz.ResourceUser, authz.ActionDelete) {
		return domain.ErrForbidden
	}
	if !s.policy.SelfProtect(actor.ID, id, authz.ActionDelete) {
		return domain.ErrSelfDelete
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// filterEcho renders a normalized equality filter for the filter echo:
// an unset filter reads back as the "all" sentinel.
func filterEcho(v string) string {
	if v == "" {
		return query.FilterAll
	}
	return v
}
