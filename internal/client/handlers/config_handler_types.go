package handlers

type ConfigResponse struct {
	// Masked API key, empty when unset.
	APIKey      string `json:"apiKey,omitempty"`
	GatewayPort int    `json:"gatewayPort"`
	AutoStart   bool   `json:"autoStart"`
}

type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

type HasAPIKeyResponse struct {
	HasAPIKey bool `json:"hasApiKey"`
}
