package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/api/metrics"
	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
)

// TaskHandler serves the admin task endpoints, the team monitor view
// and the per-user "my tasks" flow.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /v1/admin/tasks, /v1/team/tasks and /v1/my/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Substring match on task title"
// @Param        status    query     string  false  "Status filter (todo, in_progress, review, done, all)"
// @Param        priority  query     string  false  "Priority filter (low, medium, high, all)"
// @Param        page      query     int     false  "Page number (10 rows per page)"
// @Success      200       {object}  listTasksResponse
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /v1/admin/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		Actor:    actor,
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Page:     c.QueryParam("page"),
	})
	if err != nil {
		return err
	}

	data := make([]taskResponse, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		data = append(data, toTaskResponse(t))
	}

	return c.JSON(http.StatusOK, listTasksResponse{
		Data:       data,
		Pagination: toPaginationResponse(result.Meta),
		Filters:    result.Filters,
	})
}

// Create handles POST /v1/admin/tasks and /v1/team/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskMessageResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Actor:       actor,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("tasks", "create").Inc()

	return c.JSON(http.StatusCreated, taskMessageResponse{
		Message: "Task created successfully.",
		Task:    toTaskResponse(ports.TaskWithRefs{Task: task}),
	})
}

// Get handles GET /v1/admin/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  taskResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(ports.TaskWithRefs{Task: task}))
}

// Update handles PUT /v1/admin/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Task details"
// @Success      200   {object}  taskMessageResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), ports.UpdateTaskInput{
		Actor:       actor,
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		Status:      domain.TaskStatus(req.Status),
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("tasks", "update").Inc()

	return c.JSON(http.StatusOK, taskMessageResponse{
		Message: "Task updated successfully.",
		Task:    toTaskResponse(ports.TaskWithRefs{Task: task}),
	})
}

// UpdateStatus handles PATCH /v1/my/tasks/:id/status. Only the
// assignee may move their own task.
//
// @Summary      Update the status of an assigned task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Task ID"
// @Param        body  body      updateTaskStatusRequest  true  "New status"
// @Success      200   {object}  taskMessageResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/my/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskMessageResponse{
		Message: "Task status updated successfully.",
		Task:    toTaskResponse(ports.TaskWithRefs{Task: task}),
	})
}

// Delete handles DELETE /v1/admin/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("tasks", "delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully."})
}

// FormOptions handles GET /v1/admin/tasks/options (and the team
// variant): the project and assignee pickers for the task form.
//
// @Summary      Task form options
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskFormOptionsResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/tasks/options [get]
func (h *TaskHandler) FormOptions(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	opts, err := h.service.FormOptions(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskFormOptionsResponse{
		Projects:  opts.Projects,
		Assignees: opts.Assignees,
	})
}
