package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamspace/backend/api/transport"
	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/pkg/httpcontext"
	"github.com/teamspace/backend/repository"
	lifecycleUC "github.com/teamspace/backend/usecase/lifecycle"
)

type SubtaskHandler struct {
	baseHandler
	engine *lifecycleUC.Engine
	users  repository.UserRepository
}

func NewSubtaskHandler(engine *lifecycleUC.Engine, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *SubtaskHandler {
	return &SubtaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
		users:       users,
	}
}

// @Summary Add subtask
// @Tags subtasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/subtasks [post]
func (h *SubtaskHandler) Add(ctx *fasthttp.RequestCtx) {
	h.withParams(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID, subtaskID string, params lifecycleUC.SubtaskParams) (*domain.Project, error) {
		return h.engine.AddSubtask(stdCtx, projectID, actor, taskID, params)
	})
}

// @Summary Update subtask
// @Tags subtasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID} [put]
func (h *SubtaskHandler) Update(ctx *fasthttp.RequestCtx) {
	h.withParams(ctx, func(stdCtx context.Context, actor domain.User, projectID, taskID, subtaskID string, params lifecycleUC.SubtaskParams) (*domain.Project, error) {
		return h.engine.UpdateSubtask(stdCtx, projectID, actor, taskID, subtaskID, params)
	})
}

// @Summary Delete subtask
// @Tags subtasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID} [delete]
func (h *SubtaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)
	taskID, _ := ctx.UserValue("taskID").(string)
	subtaskID, _ := ctx.UserValue("subtaskID").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	project, err := h.engine.DeleteSubtask(stdCtx, projectID, actor, taskID, subtaskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

// @Summary Toggle subtask done flag
// @Tags subtasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID}/toggle [post]
func (h *SubtaskHandler) Toggle(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)
	taskID, _ := ctx.UserValue("taskID").(string)
	subtaskID, _ := ctx.UserValue("subtaskID").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	project, err := h.engine.ToggleSubtaskStatus(stdCtx, projectID, actor, taskID, subtaskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

// @Summary Toggle a subtask assignee
// @Tags subtasks
// @Router /api/v1/projects/{id}/tasks/{taskID}/subtasks/{subtaskID}/assignee [post]
func (h *SubtaskHandler) ToggleAssignee(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)
	taskID, _ := ctx.UserValue("taskID").(string)
	subtaskID, _ := ctx.UserValue("subtaskID").(string)

	var req transport.SubtaskAssigneeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.UserID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	target, err := h.users.GetByID(stdCtx, req.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	project, err := h.engine.ToggleSubtaskAssignee(stdCtx, projectID, actor, taskID, subtaskID, *target)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

func (h *SubtaskHandler) withParams(ctx *fasthttp.RequestCtx, op func(stdCtx context.Context, actor domain.User, projectID, taskID, subtaskID string, params lifecycleUC.SubtaskParams) (*domain.Project, error)) {
	projectID, _ := ctx.UserValue("id").(string)
	taskID, _ := ctx.UserValue("taskID").(string)
	subtaskID, _ := ctx.UserValue("subtaskID").(string)

	var req transport.SubtaskRequest
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

	var assignees []domain.User
	for _, id := range req.AssigneeIDs {
		user, err := h.users.GetByID(stdCtx, id)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		assignees = append(assignees, *user)
	}

	project, err := op(stdCtx, actor, projectID, taskID, subtaskID, lifecycleUC.SubtaskParams{
		Title:       req.Title,
		Description: req.Description,
		Assignees:   assignees,
		DueDate:     parseDate(req.DueDate),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}
