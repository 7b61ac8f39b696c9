package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamspace/backend/api/transport"
	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/pkg/httpcontext"
	"github.com/teamspace/backend/repository"
	lifecycleUC "github.com/teamspace/backend/usecase/lifecycle"
)

type TaskHandler struct {
	baseHandler
	engine   *lifecycleUC.Engine
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewTaskHandler(engine *lifecycleUC.Engine, projects repository.ProjectRepository, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
		projects:    projects,
		users:       users,
	}
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	assignees, err := h.resolveUsers(stdCtx, req.AssigneeIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	params := lifecycleUC.CreateTaskParams{
		Title:     req.Title,
		Assignees: assignees,
		DueDate:   parseDate(req.DueDate),
		Notes:     req.Notes,
	}
	for _, sub := range req.Subtasks {
		subAssignees, err := h.resolveUsers(stdCtx, sub.AssigneeIDs)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		params.Subtasks = append(params.Subtasks, lifecycleUC.SubtaskParams{
			Title:       sub.Title,
			Description: sub.Description,
			Assignees:   subAssignees,
			DueDate:     parseDate(sub.DueDate),
		})
	}

	project, err := h.engine.CreateTask(stdCtx, projectID, actor, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, project)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)
	taskID, _ := ctx.UserValue("taskID").(string)

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	assignees, err := h.resolveUsers(stdCtx, req.AssigneeIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	project, err := h.engine.UpdateTask(stdCtx, projectID, actor, taskID, lifecycleUC.UpdateTaskParams{
		Title:     req.Title,
		Assignees: assignees,
		DueDate:   parseDate(req.DueDate),
		Notes:     req.Notes,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	h.withTask(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error) {
		return h.engine.DeleteTask(stdCtx, projectID, actor, taskID)
	})
}

// @Summary Toggle task status
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/toggle [post]
func (h *TaskHandler) Toggle(ctx *fasthttp.RequestCtx) {
	h.withTask(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error) {
		return h.engine.ToggleStatus(stdCtx, projectID, actor, taskID)
	})
}

// @Summary Accept a task assignment
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/accept [post]
func (h *TaskHandler) Accept(ctx *fasthttp.RequestCtx) {
	note := h.note(ctx)
	h.withTask(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error) {
		return h.engine.AcceptTask(stdCtx, projectID, actor, taskID, note)
	})
}

// @Summary Decline a task assignment
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/decline [post]
func (h *TaskHandler) Decline(ctx *fasthttp.RequestCtx) {
	reason := h.note(ctx)
	h.withTask(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error) {
		return h.engine.DeclineTask(stdCtx, projectID, actor, taskID, reason)
	})
}

// @Summary Ask a question about a task
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/question [post]
func (h *TaskHandler) Question(ctx *fasthttp.RequestCtx) {
	text := h.note(ctx)
	if text == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "message text required", nil))
		return
	}
	h.withTask(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error) {
		return h.engine.AskQuestion(stdCtx, projectID, actor, taskID, text)
	})
}

// @Summary Mark a task read for the acting user
// @Tags tasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/read [post]
func (h *TaskHandler) MarkRead(ctx *fasthttp.RequestCtx) {
	h.withTask(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error) {
		return h.engine.MarkTaskAsRead(stdCtx, projectID, taskID, actor.ID)
	})
}

// @Summary New-task inbox across all projects
// @Tags tasks
// @Router /api/v1/inbox [get]
func (h *TaskHandler) Inbox(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	projects, err := h.projects.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	inbox := make(map[string][]domain.Task)
	for i := range projects {
		if tasks := lifecycleUC.NewTasksFor(&projects[i], actor.ID); len(tasks) > 0 {
			inbox[projects[i].ID] = tasks
		}
	}
	h.respondSuccess(ctx, http.StatusOK, inbox)
}

func (h *TaskHandler) withTask(ctx *fasthttp.RequestCtx, op func(stdCtx context.Context, actor domain.User, projectID, taskID string) (*domain.Project, error)) {
	projectID, _ := ctx.UserValue("id").(string)
	taskID, _ := ctx.UserValue("taskID").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	project, err := op(stdCtx, actor, projectID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

func (h *TaskHandler) note(ctx *fasthttp.RequestCtx) string {
	var req transport.TaskNoteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		return ""
	}
	return req.Message
}

func (h *TaskHandler) resolveUsers(ctx context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		user, err := h.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	return out, nil
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed
	}
	return nil
}
