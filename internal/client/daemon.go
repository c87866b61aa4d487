package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/openclaw/clawdesk/internal/client/config"
	"github.com/openclaw/clawdesk/internal/gateway"
	"github.com/openclaw/clawdesk/internal/utils"
)

// ErrDaemonRunning means another clawdesk daemon holds the instance lock.
var ErrDaemonRunning = errors.New("another clawdesk daemon is already running")

const shutdownTimeout = 5 * time.Second

// Daemon ties the gateway supervisor to the control plane and the
// application lifecycle: one instance per user, gateway stopped on the
// way out so no orphan survives the hosting application.
type Daemon struct {
	config     *ControlPlaneConfig
	supervisor *gateway.Supervisor
	cp         *ControlPlaneServer
	lock       *flock.Flock
}

func NewDaemon(cfg *ControlPlaneConfig) (*Daemon, error) {
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.DefaultConfigPath
	}

	supervisor := gateway.NewSupervisor(gateway.WithConfigPath(cfg.ConfigPath))
	cp := NewControlPlaneServer(cfg, supervisor)
	lock := flock.New(filepath.Join(filepath.Dir(cfg.ConfigPath), "clawdesk.lock"))

	return &Daemon{
		config:     cfg,
		supervisor: supervisor,
		cp:         cp,
		lock:       lock,
	}, nil
}

// Supervisor exposes the gateway supervisor for embedding callers.
func (d *Daemon) Supervisor() *gateway.Supervisor {
	return d.supervisor
}

// Start runs the daemon until ctx is cancelled. The gateway is stopped
// before Start returns, on every path.
func (d *Daemon) Start(ctx context.Context) error {
	if err := utils.EnsureParent(d.lock.Path()); err != nil {
		return fmt.Errorf("instance lock dir: %w", err)
	}
	locked, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("instance lock: %w", err)
	}
	if !locked {
		return ErrDaemonRunning
	}
	defer d.lock.Unlock()

	d.autoStartGateway()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.cp.Start(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := d.cp.Stop(stopCtx); err != nil {
			slog.Error("control plane shutdown", "error", err)
		}

		// The window-close contract: the gateway must not outlive us.
		if err := d.supervisor.Stop(); err != nil {
			slog.Error("gateway shutdown", "error", err)
		}
		return ctx.Err()
	})

	return g.Wait()
}

// autoStartGateway honors the persisted auto_start preference. A failed
// start is logged, not fatal: the frontend retries through the control
// plane once the user fixes the cause.
func (d *Daemon) autoStartGateway() {
	cfg, err := config.Load(d.config.ConfigPath)
	if err != nil {
		slog.Warn("auto-start: config load failed", "error", err)
		return
	}
	if !cfg.AutoStart {
		return
	}
	if cfg.APIKey == "" {
		slog.Info("auto-start skipped: no API key configured")
		return
	}

	if _, err := d.supervisor.Start(); err != nil {
		slog.Warn("auto-start: gateway start failed", "error", err)
	}
}
