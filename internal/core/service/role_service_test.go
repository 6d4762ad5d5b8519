package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
)

func TestRoleService_List_ZeroFilledCounts(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed("Admin", "admin@example.com", domain.RoleAdmin)
	repo.seed("Worker A", "a@example.com", domain.RoleUser)
	repo.seed("Worker B", "b@example.com", domain.RoleUser)
	svc := NewRoleService(repo, authz.NewPolicy())

	roles, err := svc.List(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != len(domain.Roles()) {
		t.Fatalf("expected one row per role, got %d", len(roles))
	}

	counts := make(map[domain.Role]int64)
	for _, r := range roles {
		counts[r.Definition.Role] = r.Members
	}
	if counts[domain.RoleAdmin] != 1 || counts[domain.RoleUser] != 2 {
		t.Errorf("member counts wrong: %+v", counts)
	}
	// Roles with no members still appear, at zero.
	if counts[domain.RoleTeamLeader] != 0 || counts[domain.RoleClient] != 0 {
		t.Errorf("empty roles must read zero: %+v", counts)
	}
}

func TestRoleService_List_DefinitionsCarryMetadata(t *testing.T) {
	svc := NewRoleService(newStubUserRepo(), authz.NewPolicy())

	roles, err := svc.List(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range roles {
		if r.Definition.Description == "" || r.Definition.Tag == "" || len(r.Definition.Permissions) == 0 {
			t.Errorf("definition for %s incomplete: %+v", r.Definition.Role, r.Definition)
		}
	}
}

func TestRoleService_List_NonAdminDenied(t *testing.T) {
	svc := NewRoleService(newStubUserRepo(), authz.NewPolicy())

	for _, actor := range []domain.Actor{leaderActor, userActor, clientActor} {
		if _, err := svc.List(context.Background(), actor); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}
