package ports

import (
	"context"

	"github.com/taskhub/project-system/internal/core/domain"
)

// RoleWithCount pairs a static role definition with the live number of
// users currently holding that role (zero when none).
type RoleWithCount struct {
	Definition domain.RoleDefinition
	Members    int64
}

// RoleService exposes the read-only role definition lookup.
type RoleService interface {
	List(ctx context.Context, actor domain.Actor) ([]RoleWithCount, error)
}

// DashboardStats is the admin landing page summary.
type DashboardStats struct {
	TotalUsers     int64
	ActiveProjects int64
	PendingTasks   int64
	CompletedTasks int64
	// RecentProjects holds the five most recently created projects with
	// their owner names.
	RecentProjects []ProjectWithOwner
	// TaskDistribution has one entry per task status, zero-filled.
	TaskDistribution map[domain.TaskStatus]int64
}

// DashboardService computes the admin dashboard aggregates.
type DashboardService interface {
	Stats(ctx context.Context, actor domain.Actor) (*DashboardStats, error)
}
