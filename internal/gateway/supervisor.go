package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/openclaw/clawdesk/internal/client/config"
)

var (
	// ErrNoAPIKey means the user has not configured an Anthropic API key.
	// Not retried automatically; the frontend must collect a key first.
	ErrNoAPIKey = errors.New("no API key configured, set one before starting the gateway")

	// ErrExecutableNotFound means the openclaw CLI is not installed or not
	// on the PATH. The message carries the remediation for the frontend.
	ErrExecutableNotFound = errors.New(GatewayCommand + " not found, install it with: npm install -g " + GatewayCommand)

	// ErrNotRunning is returned by queries that require a live gateway.
	ErrNotRunning = errors.New("gateway not running")
)

// Supervisor owns the lifecycle of at most one gateway child process.
// All public operations are mutually exclusive: each acquires the one
// lock for its full duration, reconciles the held handle against the
// real OS process state, and only then acts. {proc, info} are set and
// cleared strictly as a pair under that lock.
type Supervisor struct {
	configPath string
	locate     func() (string, bool)
	newToken   func() string

	mu   sync.Mutex
	proc *gatewayProc
	info *Info
}

type Option func(*Supervisor)

// WithConfigPath overrides where the supervisor loads its config from.
// The config is re-read on every Start call, never cached.
func WithConfigPath(path string) Option {
	return func(s *Supervisor) {
		s.configPath = path
	}
}

// WithLocator overrides executable resolution.
func WithLocator(fn func() (string, bool)) Option {
	return func(s *Supervisor) {
		s.locate = fn
	}
}

// WithTokenFunc overrides session token generation.
func WithTokenFunc(fn func() string) Option {
	return func(s *Supervisor) {
		s.newToken = fn
	}
}

func NewSupervisor(opts ...Option) *Supervisor {
	s := &Supervisor{
		configPath: config.DefaultConfigPath,
		locate:     Locate,
		newToken:   NewSessionToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start spawns the gateway, or returns the live session's Info unchanged
// if one is already running. It never spawns a second concurrent process:
// a racing caller observes the running state after taking the lock.
func (s *Supervisor) Start() (*Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reconcileLocked()
	if s.proc != nil {
		return s.info, nil
	}

	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	token := s.newToken()

	binPath, ok := s.locate()
	if !ok {
		return nil, ErrExecutableNotFound
	}

	cmd := exec.Command(binPath, "gateway", "--port", strconv.Itoa(cfg.GatewayPort), "--allow-unconfigured")
	// Secrets go through the environment, never argv, so they don't show
	// up in process listings.
	cmd.Env = append(os.Environ(),
		"ANTHROPIC_API_KEY="+cfg.APIKey,
		"OPENCLAW_GATEWAY_TOKEN="+token,
	)
	cmd.Stdin = nil

	proc := newGatewayProc(cmd)
	cmd.Stdout = &proc.stdout
	cmd.Stderr = &proc.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn gateway: %w", err)
	}
	go proc.monitor()

	info := newInfo(cfg.GatewayPort, token)
	s.proc = proc
	s.info = info

	slog.Info("gateway started", "url", info.URL, "pid", cmd.Process.Pid)
	return info, nil
}

// Stop kills the gateway and blocks until it has been fully reaped.
// State is cleared on every path, including termination errors, so the
// supervisor can never believe a dead process is alive. No-op when idle.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proc := s.proc
	s.clearLocked()
	if proc == nil {
		return nil
	}

	pid := proc.cmd.Process.Pid
	if err := proc.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop gateway (pid %d): %w", pid, err)
	}
	<-proc.done

	slog.Info("gateway stopped", "pid", pid)
	return nil
}

// Status reports liveness and the current session info. Never fails;
// a gateway that exited on its own is observed here and cleared.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reconcileLocked()

	var info *Info
	if s.info != nil {
		snapshot := *s.info
		info = &snapshot
	}
	return Status{
		Running: s.proc != nil,
		Info:    info,
	}
}

// Stats returns a resource snapshot of the live gateway process.
func (s *Supervisor) Stats() (*ProcessStats, error) {
	s.mu.Lock()
	s.reconcileLocked()
	if s.proc == nil {
		s.mu.Unlock()
		return nil, ErrNotRunning
	}
	pid := int32(s.proc.cmd.Process.Pid)
	s.mu.Unlock()

	// Sampled outside the lock; a process that dies mid-sample surfaces
	// as a stats error, and the next call reconciles it away.
	return newProcessStats(pid)
}

// reconcileLocked syncs {proc, info} with the real process state. Caller
// must hold mu. The handle is dropped when the child has been reaped, or
// when the OS-level poll errors or reports the pid gone: an unpollable
// process is treated as exited so a stale handle can't wedge the state.
func (s *Supervisor) reconcileLocked() {
	if s.proc == nil {
		return
	}

	if s.proc.exited() {
		slog.Info("gateway exited on its own", "pid", s.proc.cmd.Process.Pid, "err", s.proc.waitErr)
		s.clearLocked()
		return
	}

	alive, err := process.PidExists(int32(s.proc.cmd.Process.Pid))
	if err != nil || !alive {
		slog.Warn("gateway liveness poll failed, assuming exited", "pid", s.proc.cmd.Process.Pid, "err", err)
		s.clearLocked()
	}
}

func (s *Supervisor) clearLocked() {
	s.proc = nil
	s.info = nil
}

// gatewayProc pairs the child handle with its reaper. The monitor
// goroutine is the only caller of Wait; everyone else observes exit
// through the done channel. waitErr is written once before done closes.
type gatewayProc struct {
	cmd     *exec.Cmd
	waitErr error
	done    chan struct{}

	// Captured but not actively consumed; kept for diagnostics.
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newGatewayProc(cmd *exec.Cmd) *gatewayProc {
	return &gatewayProc{
		cmd:  cmd,
		done: make(chan struct{}),
	}
}

func (p *gatewayProc) monitor() {
	p.waitErr = p.cmd.Wait()
	close(p.done)
}

func (p *gatewayProc) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
