// Package authz is the single source of truth for access decisions.
// Every service consults the same Policy instead of inlining role
// checks, so the rules stay testable in one place.
package authz

import "github.com/taskhub/project-system/internal/core/domain"

// Resource identifies the entity type an action targets.
type Resource string

const (
	ResourceUser           Resource = "user"
	ResourceProject        Resource = "project"
	ResourceTask           Resource = "task"
	ResourceRoleDefinition Resource = "role_definition"
)

// Action is a management operation on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Scope is the row-level visibility predicate for read flows. The zero
// value is "see nothing"; repositories must apply the scope before any
// user-supplied filter.
type Scope struct {
	// All grants unrestricted visibility.
	All bool
	// CreatedBy restricts projects to those created by this user id.
	CreatedBy string
	// AssignedTo restricts tasks to those assigned to this user id.
	AssignedTo string
	// ProjectsCreatedBy restricts tasks to those belonging to projects
	// created by this user id.
	ProjectsCreatedBy string
}

// Policy holds the static grant table. It is built once at startup and
// injected into services; it carries no mutable state.
type Policy struct {
	grants map[domain.Role]map[Resource]map[Action]struct{}
}

// NewPolicy returns the fixed policy: every management action on every
// resource type is admin-only. The scoped per-role read flows are
// governed separately by VisibilityScope.
func NewPolicy() *Policy {
	all := map[Action]struct{}{
		ActionList: {}, ActionCreate: {}, ActionUpdate: {}, ActionDelete: {},
	}
	return &Policy{
		grants: map[domain.Role]map[Resource]map[Action]struct{}{
			domain.RoleAdmin: {
				ResourceUser:           all,
				ResourceProject:        all,
				ResourceTask:           all,
				ResourceRoleDefinition: {ActionList: {}},
			},
		},
	}
}

// CanPerform reports whether role may run action on resource. A role
// outside the four enumerated values denies everything; there is no
// default role.
func (p *Policy) CanPerform(role domain.Role, resource Resource, action Action) bool {
	if !role.Valid() {
		return false
	}
	byResource, ok := p.grants[role]
	if !ok {
		return false
	}
	actions, ok := byResource[resource]
	if !ok {
		return false
	}
	_, ok = actions[action]
	return ok
}

// SelfProtect reports whether the action is allowed with respect to the
// self-protection rule: an actor may never delete their own account,
// regardless of role. Evaluated in addition to, and after, CanPerform.
func (p *Policy) SelfProtect(actorID, targetUserID string, action Action) bool {
	if action == ActionDelete && actorID == targetUserID {
		return false
	}
	return true
}

// VisibilityScope computes the row-level predicate for the scoped read
// flows. It returns domain.ErrForbidden when the role has no view of
// the resource at all.
func (p *Policy) VisibilityScope(actor domain.Actor, resource Resource) (Scope, error) {
	if !actor.Role.Valid() {
		return Scope{}, domain.ErrForbidden
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return Scope{All: true}, nil
	case domain.RoleTeamLeader:
		switch resource {
		case ResourceProject:
			return Scope{CreatedBy: actor.ID}, nil
		case ResourceTask:
			return Scope{ProjectsCreatedBy: actor.ID}, nil
		}
	case domain.RoleUser:
		if resource == ResourceTask {
			return Scope{AssignedTo: actor.ID}, nil
		}
	case domain.RoleClient:
		if resource == ResourceProject {
			return Scope{All: true}, nil
		}
	}
	return Scope{}, domain.ErrForbidden
}

// CanUpdateTaskStatus reports whether actor may change the status of
// task: only the task's assignee may, in the role-scoped flows.
func (p *Policy) CanUpdateTaskStatus(actor domain.Actor, task *domain.Task) bool {
	if !actor.Role.Valid() || task.AssignedTo == "" {
		return false
	}
	return task.AssignedTo == actor.ID
}
