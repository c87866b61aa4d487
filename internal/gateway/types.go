package gateway

import "fmt"

// Info is the connection info for a single gateway session. The frontend
// uses it to open a websocket directly to the gateway process. A fresh
// Info is minted for every spawn; the token is never reused or persisted.
type Info struct {
	// Websocket URL, e.g. ws://localhost:18789
	URL string `json:"url"`
	// Port the gateway is listening on
	Port int `json:"port"`
	// Session auth token (handed to the gateway via OPENCLAW_GATEWAY_TOKEN)
	Token string `json:"token"`
}

// Status is a point-in-time liveness snapshot, computed at query time
// after reconciling against the real OS process state.
type Status struct {
	Running bool  `json:"running"`
	Info    *Info `json:"info,omitempty"`
}

func newInfo(port int, token string) *Info {
	return &Info{
		URL:   fmt.Sprintf("ws://localhost:%d", port),
		Port:  port,
		Token: token,
	}
}
