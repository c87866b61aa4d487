package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclaw/clawdesk/internal/client/config"
	"github.com/openclaw/clawdesk/internal/utils"
)

const ErrCodeConfigFailed = "ERR_CONFIG_FAILED"

// ConfigHandler exposes the persisted config record to the frontend.
// The API key is never returned in the clear.
type ConfigHandler struct {
	configPath string
}

func NewConfigHandler(configPath string) *ConfigHandler {
	return &ConfigHandler{
		configPath: configPath,
	}
}

// Get returns the config with the API key masked.
func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := config.Load(h.configPath)
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
			ErrorCode: ErrCodeConfigFailed,
			Error:     err.Error(),
		})
		return
	}

	resp := &ConfigResponse{
		GatewayPort: cfg.GatewayPort,
		AutoStart:   cfg.AutoStart,
	}
	if cfg.APIKey != "" {
		resp.APIKey = utils.MaskSecret(cfg.APIKey)
	}
	c.PureJSON(http.StatusOK, resp)
}

// SetAPIKey stores a new API key, preserving the rest of the record.
func (h *ConfigHandler) SetAPIKey(c *gin.Context) {
	var req SetAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, &ControlPlaneError{
			ErrorCode: ErrCodeBadRequest,
			Error:     err.Error(),
		})
		return
	}

	cfg, err := config.Load(h.configPath)
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
			ErrorCode: ErrCodeConfigFailed,
			Error:     err.Error(),
		})
		return
	}

	cfg.APIKey = req.APIKey
	if err := cfg.Save(); err != nil {
		c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
			ErrorCode: ErrCodeConfigFailed,
			Error:     err.Error(),
		})
		return
	}

	c.PureJSON(http.StatusOK, &ControlPlaneResponse{
		Code: CodeOk,
	})
}

// HasAPIKey tells the frontend whether onboarding is complete.
func (h *ConfigHandler) HasAPIKey(c *gin.Context) {
	cfg, err := config.Load(h.configPath)
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, &ControlPlaneError{
			ErrorCode: ErrCodeConfigFailed,
			Error:     err.Error(),
		})
		return
	}

	c.PureJSON(http.StatusOK, &HasAPIKeyResponse{
		HasAPIKey: cfg.APIKey != "",
	})
}
