package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamspace/backend/api/transport"
	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/pkg/httpcontext"
	"github.com/teamspace/backend/repository"
	messagingUC "github.com/teamspace/backend/usecase/messaging"
)

type MessageHandler struct {
	baseHandler
	engine   *messagingUC.Engine
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewMessageHandler(engine *messagingUC.Engine, projects repository.ProjectRepository, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
		projects:    projects,
		users:       users,
	}
}

// @Summary Chat timeline
// @Tags messages
// @Router /api/v1/projects/{id}/messages [get]
func (h *MessageHandler) List(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	project, err := h.projects.GetByID(stdCtx, projectID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project.ChatTimeline())
}

// @Summary Send a chat message
// @Tags messages
// @Router /api/v1/projects/{id}/messages [post]
func (h *MessageHandler) Send(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)

	var req transport.MessageRequest
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

	// Reference snapshots are captured here, against the current state of
	// the project; later renames never rewrite the sent message.
	params := messagingUC.SendMessageParams{Content: req.Content}
	if req.TaskID != "" || req.QuotedMessageID != "" {
		project, err := h.projects.GetByID(stdCtx, projectID)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		if task := project.FindTask(req.TaskID); task != nil {
			params.Task = task.Reference()
			if subtask := task.FindSubtask(req.SubtaskID); subtask != nil {
				params.Subtask = subtask.Reference()
			}
		}
		if quoted := project.FindMessage(req.QuotedMessageID); quoted != nil {
			snapshot := domain.QuoteMessage(*quoted)
			params.Quoted = &snapshot
		}
	}

	project, err := h.engine.SendMessage(stdCtx, projectID, actor, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, project)
}

// @Summary Share attachments into the project chat
// @Tags messages
// @Router /api/v1/projects/{id}/attachments [post]
func (h *MessageHandler) AddAttachments(ctx *fasthttp.RequestCtx) {
	projectID, _ := ctx.UserValue("id").(string)

	var req transport.AttachmentsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.Attachments) == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	params := make([]messagingUC.AttachmentParams, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		params = append(params, messagingUC.AttachmentParams{
			Media:        domain.MediaType(a.Media),
			Category:     domain.AttachmentCategory(a.Category),
			FileName:     a.FileName,
			FileSize:     a.FileSize,
			ThumbnailURL: a.ThumbnailURL,
			FileURL:      a.FileURL,
			TaskID:       a.TaskID,
			SubtaskID:    a.SubtaskID,
			Caption:      a.Caption,
		})
	}

	project, err := h.engine.AddAttachments(stdCtx, projectID, actor, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, project)
}
