// Package paths resolves the configuration and data directories of an
// extend workspace.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "extend"

// DefaultDataDirName is the CWD-relative data directory used when no
// override is set.
const DefaultDataDirName = ".extend-data"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "EXTEND_CONFIG_DIR"
	EnvDataDir   = "EXTEND_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/extend (fallback ~/.config/extend)
// macOS:   ~/Library/Application Support/extend
// Windows: %APPDATA%/extend
func DefaultConfigDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > EXTEND_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok := firstSet(flag, os.Getenv(EnvConfigDir)); ok {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml value > EXTEND_DATA_DIR env > $(CWD)/.extend-data.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir, ok := firstSet(flag, configYAMLValue, os.Getenv(EnvDataDir)); ok {
		return filepath.Abs(dir)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

func firstSet(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c != "" {
			return c, true
		}
	}
	return "", false
}
