package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
	"github.com/taskhub/project-system/internal/core/query"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	byID   map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) seed(title string, status domain.TaskStatus, priority domain.TaskPriority, projectID, assignedTo string) *domain.Task {
	r.nextID++
	task := &domain.Task{
		ID:         fmt.Sprintf("t%d", r.nextID),
		Title:      title,
		Status:     status,
		Priority:   priority,
		ProjectID:  projectID,
		AssignedTo: assignedTo,
		CreatedAt:  time.Now().UTC().Add(time.Duration(r.nextID) * time.Second),
		UpdatedAt:  time.Now().UTC(),
	}
	r.byID[task.ID] = task
	return task
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = fmt.Sprintf("t%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

// List mirrors the real Mongo repository: scope first, then equality
// filters, then the title search.
func (r *stubTaskRepo) List(_ context.Context, q query.TaskList, scope ports.TaskScope) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, task := range r.byID {
		if scope.AssignedTo != "" && task.AssignedTo != scope.AssignedTo {
			continue
		}
		if scope.ProjectIDs != nil {
			in := false
			for _, id := range scope.ProjectIDs {
				if id == task.ProjectID {
					in = true
					break
				}
			}
			if !in {
				continue
			}
		}
		if q.Status != "" && task.Status != q.Status {
			continue
		}
		if q.Priority != "" && task.Priority != q.Priority {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(q.Search)) {
			continue
		}
		clone := *task
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	skip := query.Offset(q.Page)
	if skip > len(matched) {
		return []*domain.Task{}, total, nil
	}
	end := skip + query.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id string, status domain.TaskStatus) error {
	task, ok := r.byID[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubTaskRepo) CountGroupByStatus(_ context.Context) (map[domain.TaskStatus]int64, error) {
	out := make(map[domain.TaskStatus]int64)
	for _, t := range r.byID {
		out[t.Status]++
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTaskService(tasks *stubTaskRepo, projects *stubProjectRepo, users *stubUserRepo) *TaskService {
	return NewTaskService(tasks, projects, users, authz.NewPolicy(), discardLogger)
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestTaskService_List_StatusFilterAndPageWindow(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, adminActor.ID)
	for i := 0; i < 12; i++ {
		tasks.seed(fmt.Sprintf("Done %02d", i), domain.TaskDone, domain.PriorityLow, p.ID, "")
	}
	tasks.seed("Still open", domain.TaskTodo, domain.PriorityHigh, p.ID, "")
	svc := newTaskService(tasks, projects, users)

	result, err := svc.List(context.Background(), ports.ListTasksInput{Actor: adminActor, Status: "done"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Meta.Total != 12 {
		t.Errorf("expected 12 done tasks, got %d", result.Meta.Total)
	}
	if len(result.Tasks) != query.PageSize {
		t.Errorf("first page must hold %d rows, got %d", query.PageSize, len(result.Tasks))
	}
	for _, row := range result.Tasks {
		if row.Task.Status != domain.TaskDone {
			t.Errorf("status filter leaked: %s is %s", row.Task.Title, row.Task.Status)
		}
	}
	// Newest first within the filtered set.
	if result.Tasks[0].Task.Title != "Done 11" {
		t.Errorf("expected newest done task first, got %s", result.Tasks[0].Task.Title)
	}
}

func TestTaskService_List_UserSeesOnlyAssigned(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, "lead2")
	tasks.seed("Mine", domain.TaskTodo, domain.PriorityLow, p.ID, userActor.ID)
	tasks.seed("Someone else's", domain.TaskTodo, domain.PriorityLow, p.ID, "other")
	svc := newTaskService(tasks, projects, users)

	result, err := svc.List(context.Background(), ports.ListTasksInput{Actor: userActor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Task.Title != "Mine" {
		t.Errorf("assignee scope leaked: %+v", result.Tasks)
	}
}

func TestTaskService_List_LeaderScopedToOwnProjects(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	mine := projects.seed("Mine", domain.ProjectActive, leaderActor.ID)
	theirs := projects.seed("Theirs", domain.ProjectActive, "lead2")
	tasks.seed("In my project", domain.TaskTodo, domain.PriorityLow, mine.ID, "")
	tasks.seed("In their project", domain.TaskTodo, domain.PriorityLow, theirs.ID, "")
	svc := newTaskService(tasks, projects, users)

	result, err := svc.List(context.Background(), ports.ListTasksInput{Actor: leaderActor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Task.Title != "In my project" {
		t.Errorf("leader scope leaked: %+v", result.Tasks)
	}
}

// A leader with no projects must see an empty list, not everything.
func TestTaskService_List_LeaderWithNoProjectsSeesNothing(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	other := projects.seed("Theirs", domain.ProjectActive, "lead2")
	tasks.seed("Task", domain.TaskTodo, domain.PriorityLow, other.ID, "")
	svc := newTaskService(tasks, projects, users)

	result, err := svc.List(context.Background(), ports.ListTasksInput{Actor: leaderActor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tasks) != 0 || result.Meta.Total != 0 {
		t.Errorf("empty scope must match nothing, got %d rows", len(result.Tasks))
	}
}

func TestTaskService_List_ClientDenied(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := newTaskService(tasks, projects, users)

	_, err := svc.List(context.Background(), ports.ListTasksInput{Actor: clientActor})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_List_InvalidPriorityRejected(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := newTaskService(tasks, projects, users)

	_, err := svc.List(context.Background(), ports.ListTasksInput{Actor: adminActor, Priority: "urgent"})
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestTaskService_Create_AssigneeMustBeAssignable(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, adminActor.ID)
	client := users.seed("Carl Client", "carl@example.com", domain.RoleClient)
	svc := newTaskService(tasks, projects, users)

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Actor:      adminActor,
		Title:      "Review contract",
		Priority:   domain.PriorityMedium,
		Status:     domain.TaskTodo,
		ProjectID:  p.ID,
		AssignedTo: client.ID,
	})
	if !errors.Is(err, domain.ErrInvalidAssignee) {
		t.Fatalf("expected ErrInvalidAssignee, got %v", err)
	}
	if len(tasks.byID) != 0 {
		t.Error("rejected create must not store a row")
	}
}

func TestTaskService_Create_UnassignedAllowed(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, adminActor.ID)
	svc := newTaskService(tasks, projects, users)

	created, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Actor:     adminActor,
		Title:     "Backlog item",
		Priority:  domain.PriorityLow,
		Status:    domain.TaskTodo,
		ProjectID: p.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.AssignedTo != "" {
		t.Errorf("expected unassigned task, got %q", created.AssignedTo)
	}
}

func TestTaskService_Create_LeaderRestrictedToOwnProjects(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	mine := projects.seed("Mine", domain.ProjectActive, leaderActor.ID)
	theirs := projects.seed("Theirs", domain.ProjectActive, "lead2")
	svc := newTaskService(tasks, projects, users)

	if _, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Actor:     leaderActor,
		Title:     "Allowed",
		Priority:  domain.PriorityLow,
		Status:    domain.TaskTodo,
		ProjectID: mine.ID,
	}); err != nil {
		t.Fatalf("leader must create in own project: %v", err)
	}

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Actor:     leaderActor,
		Title:     "Blocked",
		Priority:  domain.PriorityLow,
		Status:    domain.TaskTodo,
		ProjectID: theirs.ID,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Create_UserAndClientDenied(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := newTaskService(tasks, projects, users)

	for _, actor := range []domain.Actor{userActor, clientActor} {
		_, err := svc.Create(context.Background(), ports.CreateTaskInput{
			Actor:     actor,
			Title:     "Nope",
			Priority:  domain.PriorityLow,
			Status:    domain.TaskTodo,
			ProjectID: "p1",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus tests
// ---------------------------------------------------------------------------

func TestTaskService_UpdateStatus_AssigneeOnly(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, "lead2")
	task := tasks.seed("Mine", domain.TaskTodo, domain.PriorityLow, p.ID, userActor.ID)
	svc := newTaskService(tasks, projects, users)

	updated, err := svc.UpdateStatus(context.Background(), userActor, task.ID, domain.TaskInProgress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TaskInProgress {
		t.Errorf("status not applied: %s", updated.Status)
	}
	if tasks.byID[task.ID].Status != domain.TaskInProgress {
		t.Error("status must persist")
	}

	// A different user, even an admin not assigned the task, is blocked.
	other := domain.Actor{ID: "u99", Role: domain.RoleUser}
	if _, err := svc.UpdateStatus(context.Background(), other, task.ID, domain.TaskDone); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), adminActor, task.ID, domain.TaskDone); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-assignee admin, got %v", err)
	}
}

func TestTaskService_UpdateStatus_InvalidStatusRejected(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	svc := newTaskService(tasks, projects, users)

	_, err := svc.UpdateStatus(context.Background(), userActor, "t1", "doing")
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// FormOptions tests
// ---------------------------------------------------------------------------

func TestTaskService_FormOptions_AssigneesExcludeAdminsAndClients(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	users.seed("Admin", "admin@example.com", domain.RoleAdmin)
	users.seed("Lead", "lead@example.com", domain.RoleTeamLeader)
	users.seed("Worker", "worker@example.com", domain.RoleUser)
	users.seed("Client", "client@example.com", domain.RoleClient)
	projects.seed("Alpha", domain.ProjectActive, adminActor.ID)
	svc := newTaskService(tasks, projects, users)

	opts, err := svc.FormOptions(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.Assignees) != 2 {
		t.Fatalf("expected 2 assignable users, got %d", len(opts.Assignees))
	}
	for _, a := range opts.Assignees {
		if a.Name == "Admin" || a.Name == "Client" {
			t.Errorf("%s must not be assignable", a.Name)
		}
	}
	if len(opts.Projects) != 1 {
		t.Errorf("expected 1 project option, got %d", len(opts.Projects))
	}
}

func TestTaskService_FormOptions_LeaderSeesOwnProjectsOnly(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	projects.seed("Mine", domain.ProjectActive, leaderActor.ID)
	projects.seed("Theirs", domain.ProjectActive, "lead2")
	svc := newTaskService(tasks, projects, users)

	opts, err := svc.FormOptions(context.Background(), leaderActor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.Projects) != 1 || opts.Projects[0].Name != "Mine" {
		t.Errorf("leader project options leaked: %+v", opts.Projects)
	}
}

// ---------------------------------------------------------------------------
// Get / Update / Delete tests
// ---------------------------------------------------------------------------

func TestTaskService_Get_OutsideScopeReadsAsNotFound(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, "lead2")
	task := tasks.seed("Theirs", domain.TaskTodo, domain.PriorityLow, p.ID, "other")
	svc := newTaskService(tasks, projects, users)

	_, err := svc.Get(context.Background(), userActor, task.ID)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Update_MovesTaskBetweenProjects(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	a := projects.seed("Alpha", domain.ProjectActive, adminActor.ID)
	b := projects.seed("Beta", domain.ProjectActive, adminActor.ID)
	task := tasks.seed("Item", domain.TaskTodo, domain.PriorityLow, a.ID, "")
	svc := newTaskService(tasks, projects, users)

	updated, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		Actor:     adminActor,
		ID:        task.ID,
		Title:     "Item",
		Priority:  domain.PriorityHigh,
		Status:    domain.TaskReview,
		ProjectID: b.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ProjectID != b.ID || updated.Priority != domain.PriorityHigh {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestTaskService_Delete_AdminOnly(t *testing.T) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	p := projects.seed("Alpha", domain.ProjectActive, leaderActor.ID)
	task := tasks.seed("Item", domain.TaskTodo, domain.PriorityLow, p.ID, "")
	svc := newTaskService(tasks, projects, users)

	if err := svc.Delete(context.Background(), leaderActor, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for leader, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks.byID) != 0 {
		t.Error("task must be gone after delete")
	}
}
