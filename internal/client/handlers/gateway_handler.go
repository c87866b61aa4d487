package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclaw/clawdesk/internal/gateway"
)

const (
	ErrCodeNoAPIKey          = "ERR_NO_API_KEY"
	ErrCodeGatewayNotFound   = "ERR_GATEWAY_NOT_FOUND"
	ErrCodeSpawnFailed       = "ERR_SPAWN_FAILED"
	ErrCodeStopFailed        = "ERR_STOP_FAILED"
	ErrCodeGatewayNotRunning = "ERR_GATEWAY_NOT_RUNNING"
	ErrCodeProbeFailed       = "ERR_PROBE_FAILED"
)

// GatewayHandler exposes the gateway supervisor to the frontend.
type GatewayHandler struct {
	supervisor *gateway.Supervisor
}

func NewGatewayHandler(supervisor *gateway.Supervisor) *GatewayHandler {
	return &GatewayHandler{
		supervisor: supervisor,
	}
}

// Start spawns the gateway, or returns the running session's info
// unchanged. Start is idempotent while a gateway is alive.
func (h *GatewayHandler) Start(c *gin.Context) {
	info, err := h.supervisor.Start()
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrNoAPIKey):
			c.PureJSON(http.StatusPreconditionFailed, &ControlPlaneError{
				ErrorCode: ErrCodeNoAPIKey,
				Error:     err.Error(),
			})
		case errors.Is(err, gateway.ErrExecutableNotFound):
			c.PureJSON(http.StatusNotFound, &ControlPlaneError{
				ErrorCode: ErrCodeGatewayNotFound,
				Error:     err.Error(),
			})
		default:
			c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
				ErrorCode: ErrCodeSpawnFailed,
				Error:     err.Error(),
			})
		}
		return
	}

	c.PureJSON(http.StatusOK, info)
}

// Stop terminates the gateway. Supervisor state is cleared even when
// termination fails, so the error is reported but never sticky.
func (h *GatewayHandler) Stop(c *gin.Context) {
	if err := h.supervisor.Stop(); err != nil {
		c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
			ErrorCode: ErrCodeStopFailed,
			Error:     err.Error(),
		})
		return
	}

	c.PureJSON(http.StatusOK, &ControlPlaneResponse{
		Code: CodeOk,
	})
}

// Status reports gateway liveness. Always 200; status is advisory.
func (h *GatewayHandler) Status(c *gin.Context) {
	c.PureJSON(http.StatusOK, h.supervisor.Status())
}

// Stats returns a resource snapshot of the running gateway process.
func (h *GatewayHandler) Stats(c *gin.Context) {
	stats, err := h.supervisor.Stats()
	if err != nil {
		if errors.Is(err, gateway.ErrNotRunning) {
			c.PureJSON(http.StatusServiceUnavailable, &ControlPlaneError{
				ErrorCode: ErrCodeGatewayNotRunning,
				Error:     err.Error(),
			})
			return
		}
		c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
			ErrorCode: ErrCodeUnknownError,
			Error:     err.Error(),
		})
		return
	}

	c.PureJSON(http.StatusOK, stats)
}

// Probe dials the gateway's websocket endpoint to confirm it is
// accepting connections.
func (h *GatewayHandler) Probe(c *gin.Context) {
	status := h.supervisor.Status()
	if !status.Running {
		c.PureJSON(http.StatusServiceUnavailable, &ControlPlaneError{
			ErrorCode: ErrCodeGatewayNotRunning,
			Error:     gateway.ErrNotRunning.Error(),
		})
		return
	}

	if err := gateway.Probe(c.Request.Context(), status.Info); err != nil {
		c.PureJSON(http.StatusServiceUnavailable, &ControlPlaneError{
			ErrorCode: ErrCodeProbeFailed,
			Error:     err.Error(),
		})
		return
	}

	c.PureJSON(http.StatusOK, &ControlPlaneResponse{
		Code: CodeOk,
	})
}
