package domain

import "time"

// Role is the fixed enumeration of access levels. There is no dynamic
// role creation: every actor holds exactly one of these four values.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeamLeader Role = "team_leader"
	RoleUser       Role = "user"
	RoleClient     Role = "client"
)

// Roles lists the valid role values in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleTeamLeader, RoleUser, RoleClient}
}

// Valid reports whether r is one of the four enumerated roles. Anything
// else must be treated as an authorization failure, never coerced to a
// default role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamLeader, RoleUser, RoleClient:
		return true
	}
	return false
}

// Assignable reports whether a user holding this role may be assigned
// tasks (team leaders and regular users only).
func (r Role) Assignable() bool {
	return r == RoleTeamLeader || r == RoleUser
}

// User models an account. Email is globally unique and stored lowercase;
// PasswordHash is a bcrypt digest, never the plaintext.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity attached to a request, resolved
// once per request by the auth middleware.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  Role
}
