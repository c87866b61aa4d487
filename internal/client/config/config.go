// Package config persists the small on-disk record the daemon shares
// with the frontend: the Anthropic API key, the gateway port, and the
// auto-start preference.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/openclaw/clawdesk/internal/utils"
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigDir  = filepath.Join(home, ".clawdesk")
	DefaultConfigPath = filepath.Join(DefaultConfigDir, "config.json")
)

const DefaultGatewayPort = 18789

type Config struct {
	// Anthropic API key handed to the gateway process. Optional until the
	// user sets one; the gateway cannot start without it.
	APIKey string `json:"api_key,omitempty"`
	// Port the gateway listens on.
	GatewayPort int `json:"gateway_port"`
	// Start the gateway automatically when the daemon boots.
	AutoStart bool `json:"auto_start"`

	Path string `json:"-"`
}

func Default() *Config {
	return &Config{
		GatewayPort: DefaultGatewayPort,
		AutoStart:   true,
	}
}

// Load reads the config at path. A missing file yields the defaults, not
// an error. Callers load fresh on every use; nothing is cached.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.GatewayPort <= 0 {
		cfg.GatewayPort = DefaultGatewayPort
	}

	return cfg, nil
}

// Save writes the config to its path, creating parent directories as
// needed. The file holds the API key, hence the tight permissions.
func (c *Config) Save() error {
	if c.Path == "" {
		c.Path = DefaultConfigPath
	}
	if err := utils.EnsureParent(c.Path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o600)
}
