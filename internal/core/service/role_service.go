package service

import (
	"context"
	"fmt"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
)

// RoleService serves the read-only roles screen: the static definition
// table paired with live membership counts. The definitions are built
// once at construction and never mutated.
type RoleService struct {
	users       ports.UserRepository
	policy      *authz.Policy
	definitions []domain.RoleDefinition
}

func NewRoleService(users ports.UserRepository, policy *authz.Policy) *RoleService {
	return &RoleService{
		users:       users,
		policy:      policy,
		definitions: domain.RoleDefinitions(),
	}
}

// List returns every role definition with the current number of users
// holding it, zero for roles with no members.
func (s *RoleService) List(ctx context.Context, actor domain.Actor) ([]ports.RoleWithCount, error) {
	if !s.policy.CanPerform(actor.Role, authz.ResourceRoleDefinition, authz.ActionList) {
		return nil, domain.ErrForbidden
	}

	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	out := make([]ports.RoleWithCount, len(s.definitions))
	for i, def := range s.definitions {
		out[i] = ports.RoleWithCount{Definition: def, Members: counts[def.Role]}
	}
	return out, nil
}
