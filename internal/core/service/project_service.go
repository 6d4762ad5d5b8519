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

// ProjectService implements project use cases. The admin management
// surface is policy-gated; the team and client read flows reuse the
// same listing with the policy's visibility scope applied first.
type ProjectService struct {
	repo   ports.ProjectRepository
	users  ports.UserRepository
	policy *authz.Policy
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, users ports.UserRepository, policy *authz.Policy, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, users: users, policy: policy, logger: logger}
}

// List returns one page of projects visible to the actor, newest first.
// Admins see everything; team leaders see projects they created;
// clients get the read-only progress view.
func (s *ProjectService) List(ctx context.Context, in ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	scope, err := s.visibility(in.Actor)
	if err != nil {
		return nil, err
	}

	q, err := query.BuildProjectList(in.Search, in.Status, in.Page)
	if err != nil {
		return nil, err
	}

	projects, total, err := s.repo.List(ctx, q, scope.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	withOwners, err := s.attachOwners(ctx, projects)
	if err != nil {
		return nil, err
	}

	return &ports.ListProjectsResult{
		Projects: withOwners,
		Meta:     query.NewPageMeta(q.Page, total, len(projects)),
		Filters:  ports.ProjectFilters{Search: q.Search, Status: filterEcho(string(q.Status))},
	}, nil
}

// Create stores a new project with the authenticated admin as creator.
func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceProject, authz.ActionCreate) {
		return nil, domain.ErrForbidden
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, in.Status)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedBy:   in.Actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info().Str("project_id", created.ID).Str("created_by", in.Actor.ID).Msg("project created")
	return created, nil
}

// Get loads one project within the actor's visibility scope. Outside
// the scope the project reads as not found, not forbidden, so ids are
// not probeable.
func (s *ProjectService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error) {
	scope, err := s.visibility(actor)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope.CreatedBy != "" && project.CreatedBy != scope.CreatedBy {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

// Update applies the full edit payload in one write.
func (s *ProjectService) Update(ctx context.Context, in ports.UpdateProjectInput) (*domain.Project, error) {
	if !s.policy.CanPerform(in.Actor.Role, authz.ResourceProject, authz.ActionUpdate) {
		return nil, domain.ErrForbidden
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, in.Status)
	}

	project, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	project.Name = in.Name
	project.Description = in.Description
	project.Status = in.Status
	project.DueDate = in.DueDate
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.Info().Str("project_id", project.ID).Msg("project updated")
	return project, nil
}

// Delete removes a project. Tasks under it are not cascaded here;
// deletion semantics beyond the row are the store's concern.
func (s *ProjectService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !s.policy.CanPerform(actor.Role, authz.ResourceProject, authz.ActionDelete) {
		return domain.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info().Str("project_id", id).Str("actor_id", actor.ID).Msg("project deleted")
	return nil
}

// visibility resolves the actor's project scope: admins list through
// the management grant, other roles through the policy's read scopes.
func (s *ProjectService) visibility(actor domain.Actor) (authz.Scope, error) {
	if s.policy.CanPerform(actor.Role, authz.ResourceProject, authz.ActionList) {
		return authz.Scope{All: true}, nil
	}
	return s.policy.VisibilityScope(actor, authz.ResourceProject)
}

// attachOwners resolves creator display names for a page of projects.
func (s *ProjectService) attachOwners(ctx context.Context, projects []*domain.Project) ([]ports.ProjectWithOwner, error) {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.CreatedBy)
	}
	names, err := s.users.NamesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve project owners: %w", err)
	}

	out := make([]ports.ProjectWithOwner, len(projects))
	for i, p := range projects {
		out[i] = ports.ProjectWithOwner{Project: p, Owner: names[p.CreatedBy]}
	}
	return out, nil
}
