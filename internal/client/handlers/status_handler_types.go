package handlers

// StatusResponse is the daemon health snapshot.
type StatusResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"ts"`
	Version        string `json:"version"`
	Revision       string `json:"revision"`
	BuildDate      string `json:"buildDate"`
	GatewayRunning bool   `json:"gatewayRunning"`
}
