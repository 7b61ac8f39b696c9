package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamspace/backend/internal/monitor"
	"github.com/teamspace/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"store": map[string]interface{}{
			"projects":   status.Projects,
			"users":      status.Users,
			"activities": status.Activities,
			"listeners":  status.Listeners,
		},
		"uptime_seconds": int64(status.Uptime.Seconds()),
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}
