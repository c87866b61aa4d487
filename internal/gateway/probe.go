package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

const probeTimeout = 3 * time.Second

// Probe dials the gateway's websocket endpoint with the session token to
// confirm it is accepting connections. Advisory only: it never mutates
// supervisor state, and a freshly spawned gateway may legitimately not
// be listening yet.
func Probe(ctx context.Context, info *Info) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, info.URL, &websocket.DialOptions{
		HTTPHeader: http.Header{
			"Authorization": []string{"Bearer " + info.Token},
		},
	})
	if err != nil {
		return fmt.Errorf("gateway unreachable at %s: %w", info.URL, err)
	}
	conn.Close(websocket.StatusNormalClosure, "probe")

	return nil
}
