package gateway

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionTokenFormat(t *testing.T) {
	token := NewSessionToken()
	assert.True(t, strings.HasPrefix(token, tokenPrefix+"-"))
	assert.Greater(t, len(token), len(tokenPrefix)+1)
}

func TestNewSessionTokenUnique(t *testing.T) {
	first := NewSessionToken()
	// Sub-second nanos drive uniqueness; give coarse clocks a beat.
	time.Sleep(2 * time.Millisecond)
	second := NewSessionToken()

	assert.NotEqual(t, first, second)
}
