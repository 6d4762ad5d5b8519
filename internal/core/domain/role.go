package domain

// RoleDefinition is the static description of one role: what it is for
// and the human-readable permission labels shown on the roles screen.
// Definitions are constant; they are built once at startup and never
// mutated at runtime.
type RoleDefinition struct {
	Role        Role     `json:"role"`
	Description string   `json:"description"`
	Tag         string   `json:"tag"`
	Permissions []string `json:"permissions"`
}

// RoleDefinitions returns a fresh copy of the static role table, in
// display order. Callers receive their own slice so the table cannot be
// mutated through the return value.
func RoleDefinitions() []RoleDefinition {
	return []RoleDefinition{
		{
			Role:        RoleAdmin,
			Description: "Full access to all system resources, including user management and system settings.",
			Tag:         "red",
			Permissions: []string{"Manage Users", "Manage All Projects", "Delete Content", "Assign Roles"},
		},
		{
			Role:        RoleTeamLeader,
			Description: "Can manage assigned projects, create tasks, and view team progress.",
			Tag:         "blue",
			Permissions: []string{"Create Projects", "Assign Tasks", "View Team Reports", "Manage Sprints"},
		},
		{
			Role:        RoleUser,
			Description: "Standard access to view assigned tasks and update task status.",
			Tag:         "green",
			Permissions: []string{"View Assigned Tasks", "Update Task Status", "Comment on Tasks"},
		},
		{
			Role:        RoleClient,
			Description: "Read-only access to view specific project progress and deliverables.",
			Tag:         "purple",
			Permissions: []string{"View Project Progress", "View Deliverables"},
		},
	}
}
