package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamspace/backend/api/transport"
	"github.com/teamspace/backend/domain"
	"github.com/teamspace/backend/pkg/httpcontext"
	"github.com/teamspace/backend/repository"
)

type ProjectHandler struct {
	baseHandler
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewProjectHandler(projects repository.ProjectRepository, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		baseHandler: newBaseHandler(adapter, logger),
		projects:    projects,
		users:       users,
	}
}

// @Summary List projects
// @Tags projects
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	projects, err := h.projects.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, projects)
}

// @Summary Get one project
// @Tags projects
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	project, err := h.projects.GetByID(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

// @Summary Create a project
// @Tags projects
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.ProjectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	// The creator is always the first member, which makes them the
	// project admin by convention.
	members := []domain.User{actor}
	for _, memberID := range req.MemberIDs {
		if memberID == actor.ID {
			continue
		}
		user, err := h.users.GetByID(stdCtx, memberID)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		members = append(members, *user)
	}

	project := &domain.Project{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Members:        members,
		LastActivityAt: time.Now(),
	}
	if err := h.projects.Insert(stdCtx, project); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, project)
}

// @Summary Delete a project
// @Tags projects
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing project id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.projects.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Grouped project attachments
// @Tags projects
// @Router /api/v1/projects/{id}/attachments [get]
func (h *ProjectHandler) Attachments(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	project, err := h.projects.GetByID(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project.GroupAttachmentsByTask())
}
