package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenHex returns n random bytes hex-encoded. Used for the control
// plane auth token; the gateway session token has its own format.
func TokenHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
