package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
	"github.com/taskhub/project-system/internal/core/query"
)

// TaskService implements task use cases. Admin management is policy
// gated; team leaders create and monitor tasks inside their own
// projects; regular users see and progress tasks assigned to them.
type TaskService struct {
	repo     ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	policy   *authz.Policy
	logger   zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, policy *authz.Policy, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, projects: projects, users: users, policy: policy, logger: logger}
}

// List returns one page of tasks visible to the actor, newest first.
func (s *TaskService) List(ctx context.Context, in ports.ListTasksInput) (*ports.ListTasksResult, error) {
	scope, err := s.visibility(ctx, in.Actor)
	if err != nil {
		return nil, err
	}

	q, err := query.BuildTaskList(in.Search, in.Status, in.Priority, in.Page)
	if err != nil {
		return nil, err
	}

	tasks, total, err := s.repo.List(ctx, q, scope)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	withRefs, err := s.attachRefs(ctx, tasks)
	if err != nil {
		return nil, err
	}

	return &ports.ListTasksResult{
		Tasks: withRefs,
		Meta:  query.NewPageMeta(q.Page, total, len(tasks)),
		Filters: ports.TaskFilters{
			Search:   q.Search,
			Status:   filterEcho(string(q.Status)),
			Priority: filterEcho(string(q.Priority)),
		},
	}, nil
}

// Create stores a new task. Admins may target any project; a team
// leader only their own. The assignee, when given, must hold an
// assignable role.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceTask, authz.ActionCreate) {
		// Team leaders assign tasks within their own projects.
		if in.Actor.Role != domain.RoleTeamLeader {
			return nil, domain.ErrForbidden
		}
	}
	if err := s.checkEnums(in.Priority, in.Status); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if in.Actor.Role == domain.RoleTeamLeader && project.CreatedBy != in.Actor.ID {
		return nil, domain.ErrForbidden
	}

	if err := s.checkAssignee(ctx, in.AssignedTo); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		ProjectID:   project.ID,
		AssignedTo:  in.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Str("task_id", created.ID).Str("project_id", created.ProjectID).Msg("task created")
	return created, nil
}

// Get loads one task within the actor's visibility scope.
func (s *TaskService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Task, error) {
	scope, err := s.visibility(ctx, actor)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scopeAllowsTask(scope, task) {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// Update applies the full edit payload in one write (admin only).
func (s *TaskService) Update(ctx context.Context, in ports.UpdateTaskInput) (*domain.Task, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceTask, authz.ActionUpdate) {
		return nil, domain.ErrForbidden
	}
	if err := s.checkEnums(in.Priority, in.Status); err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, in.AssignedTo); err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Priority = in.Priority
	task.Status = in.Status
	task.ProjectID = in.ProjectID
	task.AssignedTo = in.AssignedTo
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info().Str("task_id", task.ID).Msg("task updated")
	return task, nil
}

// Delete removes a task (admin only).
func (s *TaskService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !s.policy.CanPerform(actor.Role, authz.ResourceTask, authz.ActionDelete) {
		return domain.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info().Str("task_id", id).Str("actor_id", actor.ID).Msg("task deleted")
	return nil
}

// UpdateStatus moves a task through its workflow. Only the assignee may
// do this; it is the one mutation open to regular users.
func (s *TaskService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, status)
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanUpdateTaskStatus(actor, task) {
		return nil, domain.ErrForbidden
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	s.logger.Info().Str("task_id", id).Str("status", string(status)).Msg("task status updated")
	return task, nil
}

// FormOptions returns the project and assignee pickers for the task
// create/edit screens.
func (s *TaskService) FormOptions(ctx context.Context, actor domain.Actor) (*ports.TaskFormOptions, error) {
	if !s.policy.CanPerform(actor.Role, authz.ResourceTask, authz.ActionCreate) && actor.Role != domain.RoleTeamLeader {
		return nil, domain.ErrForbidden
	}

	projects, err := s.projects.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("task form options: %w", err)
	}
	assignees, err := s.users.ListAssignable(ctx)
	if err != nil {
		return nil, fmt.Errorf("task form options: %w", err)
	}

	opts := &ports.TaskFormOptions{}
	for _, p := range projects {
		if actor.Role == domain.RoleTeamLeader && p.CreatedBy != actor.ID {
			continue
		}
		opts.Projects = append(opts.Projects, ports.Option{ID: p.ID, Name: p.Name})
	}
	for _, u := range assignees {
		opts.Assignees = append(opts.Assignees, ports.Option{ID: u.ID, Name: u.Name})
	}
	return opts, nil
}

// visibility resolves the actor's task scope. A team leader's scope is
// materialized into the concrete set of their project ids so the store
// can filter rows directly.
func (s *TaskService) visibility(ctx context.Context, actor domain.Actor) (ports.TaskScope, error) {
	if s.policy.CanPerform(actor.Role, authz.ResourceTask, authz.ActionList) {
		return ports.TaskScope{}, nil
	}

	scope, err := s.policy.VisibilityScope(actor, authz.ResourceTask)
	if err != nil {
		return ports.TaskScope{}, err
	}
	if scope.AssignedTo != "" {
		return ports.TaskScope{AssignedTo: scope.AssignedTo}, nil
	}
	if scope.ProjectsCreatedBy != "" {
		ids, err := s.projects.IDsByCreator(ctx, scope.ProjectsCreatedBy)
		if err != nil {
			return ports.TaskScope{}, fmt.Errorf("resolve task scope: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		return ports.TaskScope{ProjectIDs: ids}, nil
	}
	return ports.TaskScope{}, nil
}

func (s *TaskService) checkEnums(priority domain.TaskPriority, status domain.TaskStatus) error {
	if !priority.Valid() {
		return fmt.Errorf("%w: priority %q", domain.ErrInvalidFilter, priority)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, status)
	}
	return nil
}

// checkAssignee verifies that a non-empty assignee references a user
// whose role can hold tasks.
func (s *TaskService) checkAssignee(ctx context.Context, assignedTo string) error {
	if assignedTo == "" {
		return nil
	}
	assignee, err := s.users.FindByID(ctx, assignedTo)
	if err != nil {
		return err
	}
	if !assignee.Role.Assignable() {
		return domain.ErrInvalidAssignee
	}
	return nil
}

// attachRefs resolves project and assignee display names for a page of
// tasks.
func (s *TaskService) attachRefs(ctx context.Context, tasks []*domain.Task) ([]ports.TaskWithRefs, error) {
	userIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo != "" {
			userIDs = append(userIDs, t.AssignedTo)
		}
	}
	names, err := s.users.NamesByID(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve task assignees: %w", err)
	}

	projectNames := make(map[string]string)
	out := make([]ports.TaskWithRefs, len(tasks))
	for i, t := range tasks {
		pname, ok := projectNames[t.ProjectID]
		if !ok {
			if p, err := s.projects.FindByID(ctx, t.ProjectID); err == nil {
				pname = p.Name
			}
			projectNames[t.ProjectID] = pname
		}
		out[i] = ports.TaskWithRefs{Task: t, Project: pname, Assignee: names[t.AssignedTo]}
	}
	return out, nil
}

// scopeAllowsTask mirrors the store-side scope filter for single-row
// reads.
func scopeAllowsTask(scope ports.TaskScope, task *domain.Task) bool {
	if scope.AssignedTo != "" && task.AssignedTo != scope.AssignedTo {
		return false
	}
	if scope.ProjectIDs != nil {
		for _, id := range scope.ProjectIDs {
			if id == task.ProjectID {
				return true
			}
		}
		return false
	}
	return true
}
