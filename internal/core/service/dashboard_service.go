package service

import (
	"context"
	"fmt"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
)

const recentProjectsLimit = 5

// DashboardService computes the admin landing page aggregates. Each
// call reads the store fresh; nothing is cached.
type DashboardService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	policy   *authz.Policy
}

func NewDashboardService(users ports.UserRepository, projects ports.ProjectRepository, tasks ports.TaskRepository, policy *authz.Policy) *DashboardService {
	return &DashboardService{users: users, projects: projects, tasks: tasks, policy: policy}
}

// Stats returns the headline counts, the five most recent projects and
// the task status distribution.
func (s *DashboardService) Stats(ctx context.Context, actor domain.Actor) (*ports.DashboardStats, error) {
	if !s.policy.CanPerform(actor.Role, authz.ResourceUser, authz.ActionList) {
		return nil, domain.ErrForbidden
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	activeProjects, err := s.projects.CountByStatus(ctx, domain.ProjectActive)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	byStatus, err := s.tasks.CountGroupByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	distribution := make(map[domain.TaskStatus]int64, len(domain.TaskStatuses()))
	for _, st := range domain.TaskStatuses() {
		distribution[st] = byStatus[st]
	}

	recent, err := s.projects.Recent(ctx, recentProjectsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	ids := make([]string, 0, len(recent))
	for _, p := range recent {
		ids = append(ids, p.CreatedBy)
	}
	names, err := s.users.NamesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	withOwners := make([]ports.ProjectWithOwner, len(recent))
	for i, p := range recent {
		withOwners[i] = ports.ProjectWithOwner{Project: p, Owner: names[p.CreatedBy]}
	}

	return &ports.DashboardStats{
		TotalUsers:       totalUsers,
		ActiveProjects:   activeProjects,
		PendingTasks:     distribution[domain.TaskTodo] + distribution[domain.TaskInProgress] + distribution[domain.TaskReview],
		CompletedTasks:   distribution[domain.TaskDone],
		RecentProjects:   withOwners,
		TaskDistribution: distribution,
	}, nil
}
