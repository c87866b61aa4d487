//go:build !windows

package gateway

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawdesk/internal/client/config"
)

const testPort = 28789

// writeScript drops an executable shell script standing in for the
// gateway binary.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-gateway")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func writeTestConfig(t *testing.T, apiKey string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	cfg := &config.Config{
		APIKey:      apiKey,
		GatewayPort: testPort,
		Path:        cfgPath,
	}
	require.NoError(t, cfg.Save())
	return cfgPath
}

func newTestSupervisor(t *testing.T, apiKey, script string) *Supervisor {
	t.Helper()
	s := NewSupervisor(
		WithConfigPath(writeTestConfig(t, apiKey)),
		WithLocator(func() (string, bool) {
			return script, script != ""
		}),
	)
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestStartIdempotent(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	first, err := s.Start()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := s.Start()
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.Equal(t, first.Port, second.Port)
	assert.Equal(t, first.URL, second.URL)

	status := s.Status()
	assert.True(t, status.Running)
	require.NotNil(t, status.Info)
	assert.Equal(t, first.Token, status.Info.Token)
}

func TestStartInfoShape(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	info, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, testPort, info.Port)
	assert.Equal(t, "ws://localhost:28789", info.URL)
	assert.NotEmpty(t, info.Token)
}

func TestStartInjectsSecretsViaEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "env.txt")
	script := writeScript(t, `printf '%s\n%s\n' "$OPENCLAW_GATEWAY_TOKEN" "$ANTHROPIC_API_KEY" > "`+envFile+`"
exec sleep 30
`)
	s := newTestSupervisor(t, "sk-ant-test", script)

	info, err := s.Start()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(envFile)
		return err == nil && len(data) > 0
	}, 3*time.Second, 20*time.Millisecond)

	data, err := os.ReadFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, info.Token+"\nsk-ant-test\n", string(data))
}

func TestStopClearsState(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	_, err := s.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	status := s.Status()
	assert.False(t, status.Running)
	assert.Nil(t, status.Info)

	// stop is a no-op once idle
	require.NoError(t, s.Stop())
}

func TestStopWhenIdle(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	require.NoError(t, s.Stop())
	assert.False(t, s.Status().Running)
}

func TestReconcileObservesSelfExit(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exit 0\n"))

	first, err := s.Start()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return !s.Status().Running
	}, 3*time.Second, 20*time.Millisecond)

	assert.Nil(t, s.Status().Info)

	second, err := s.Start()
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestStartNoAPIKey(t *testing.T) {
	s := newTestSupervisor(t, "", writeScript(t, "exec sleep 30\n"))

	_, err := s.Start()
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.False(t, s.Status().Running)
}

func TestStartExecutableNotFound(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", "")

	_, err := s.Start()
	require.ErrorIs(t, err, ErrExecutableNotFound)
	assert.False(t, s.Status().Running)
}

func TestTokenRotatesAcrossSessions(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	first, err := s.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	second, err := s.Start()
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	assert.NotEqual(t, first.Token, second.Token)
}

func TestStatsRequiresRunningGateway(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	_, err := s.Stats()
	require.ErrorIs(t, err, ErrNotRunning)

	_, err = s.Start()
	require.NoError(t, err)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.NotZero(t, stats.PID)
}

// The {proc, info} pair must never be observable half-set, no matter how
// start/stop/status interleave.
func TestPairInvariantUnderConcurrency(t *testing.T) {
	s := newTestSupervisor(t, "sk-ant-test", writeScript(t, "exec sleep 30\n"))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for range 10 {
				_, _ = s.Start()
			}
		}()
		go func() {
			defer wg.Done()
			for range 10 {
				_ = s.Stop()
			}
		}()
		go func() {
			defer wg.Done()
			for range 25 {
				status := s.Status()
				if status.Running {
					assert.NotNil(t, status.Info)
				} else {
					assert.Nil(t, status.Info)
				}
			}
		}()
	}
	wg.Wait()
}
