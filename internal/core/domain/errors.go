package domain

import "errors"

// Sentinel errors shared across services. The API error handler maps
// each to a deterministic HTTP status; none of them crash the process.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")

	// ErrForbidden is the generic authorization rejection: the actor's
	// role does not permit the action. Terminal, no retry.
	ErrForbidden = errors.New("access forbidden")

	// ErrSelfDelete is raised when an actor attempts to delete their own
	// account. It applies regardless of role.
	ErrSelfDelete = errors.New("you cannot delete your own account")

	// ErrEmailTaken is the uniqueness conflict on User.Email, surfaced to
	// callers as a field-level validation failure.
	ErrEmailTaken = errors.New("email has already been taken")

	// ErrInvalidFilter flags an unrecognized value for an enumerated list
	// filter. Unknown values are rejected, never silently dropped.
	ErrInvalidFilter = errors.New("invalid filter value")

	// ErrInvalidAssignee flags an assigned_to reference to a user whose
	// role cannot hold tasks.
	ErrInvalidAssignee = errors.New("assignee must be a team leader or regular user")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
