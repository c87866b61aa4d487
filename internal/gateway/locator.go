package gateway

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/openclaw/clawdesk/internal/utils"
)

// GatewayCommand is the executable name of the OpenClaw CLI.
const GatewayCommand = "openclaw"

// Locate resolves the gateway executable. It checks the shell PATH first,
// then a fixed list of npm global-install and system binary locations.
// Deterministic for a given environment; no side effects.
func Locate() (string, bool) {
	home, _ := os.UserHomeDir()
	return locate(GatewayCommand, candidatePaths(home))
}

func candidatePaths(home string) []string {
	return []string{
		filepath.Join(home, ".npm-global", "bin", GatewayCommand),
		filepath.Join(home, "node_modules", ".bin", GatewayCommand),
		filepath.Join("/usr/local/bin", GatewayCommand),
		filepath.Join("/opt/homebrew/bin", GatewayCommand),
	}
}

func locate(name string, candidates []string) (string, bool) {
	if path, err := exec.LookPath(name); err == nil && path != "" {
		return path, true
	}

	for _, path := range candidates {
		if utils.FileExists(path) {
			return path, true
		}
	}

	return "", false
}
