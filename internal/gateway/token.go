package gateway

import (
	"fmt"
	"time"
)

const tokenPrefix = "oclaw"

// NewSessionToken returns an auth token scoping a single gateway run.
// It is derived from the wall clock (seconds + sub-second nanos in hex),
// which is unique with high probability within one process lifetime.
//
// This is intentionally not cryptographically strong: the gateway binds
// to loopback for a single local user and the token only correlates one
// session. A clock stuck before the epoch degrades to a zero basis
// instead of failing the start.
func NewSessionToken() string {
	now := time.Now()
	secs := now.Unix()
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%s-%x%x", tokenPrefix, secs, now.Nanosecond())
}
