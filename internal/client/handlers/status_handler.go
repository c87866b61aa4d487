package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openclaw/clawdesk/internal/gateway"
	"github.com/openclaw/clawdesk/internal/version"
)

// StatusHandler reports daemon health and build info.
type StatusHandler struct {
	supervisor *gateway.Supervisor
}

func NewStatusHandler(supervisor *gateway.Supervisor) *StatusHandler {
	return &StatusHandler{
		supervisor: supervisor,
	}
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.PureJSON(http.StatusOK, &StatusResponse{
		Status:         "ok",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Version:        version.Version,
		Revision:       version.Revision,
		BuildDate:      version.BuildDate,
		GatewayRunning: h.supervisor.Status().Running,
	})
}
