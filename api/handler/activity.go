package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamspace/backend/pkg/httpcontext"
	"github.com/teamspace/backend/repository"
	activityUC "github.com/teamspace/backend/usecase/activity"
)

type ActivityHandler struct {
	baseHandler
	feed  *activityUC.Feed
	users repository.UserRepository
}

func NewActivityHandler(feed *activityUC.Feed, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		feed:        feed,
		users:       users,
	}
}

// @Summary Activity feed for the acting user
// @Tags activities
// @Router /api/v1/activities [get]
func (h *ActivityHandler) Feed(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	actor, ok := h.actor(ctx, stdCtx, h.users)
	if !ok {
		return
	}

	activities, err := h.feed.For(stdCtx, actor.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activities)
}
