// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "biobank"

// DatabaseFileName is the sqlite file created inside the data directory.
const DatabaseFileName = "biobank.db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BIOBANK_CONFIG_DIR"
	EnvDataDir   = "BIOBANK_DATA_DIR"
)

// platformDir holds platform lookups that tests can replace.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/biobank (fallback ~/.config/biobank)
// macOS:   ~/Library/Application Support/biobank
// Windows: %APPDATA%/biobank
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific data directory.
//
// Linux:   $XDG_DATA_HOME/biobank (fallback ~/.local/share/biobank)
// macOS and Windows: same as the configuration directory.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func userDir(xdgVar, homeRel string) (string, error) {
	if platformDir.goos == "linux" {
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, homeRel, appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence flag > BIOBANK_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return resolve(flag, "", EnvConfigDir, DefaultConfigDir)
}

// ResolveDataDir returns the data directory following the precedence
// flag > config.yaml data_dir > BIOBANK_DATA_DIR > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvDataDir, DefaultDataDir)
}

func resolve(flag, configValue, envVar string, fallback func() (string, error)) (string, error) {
	for _, candidate := range []string{flag, configValue, os.Getenv(envVar)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	return fallback()
}

// DefaultDatabaseURL returns the sqlite URL of the database file inside
// dataDir. An absolute dataDir yields the four-slash absolute form.
func DefaultDatabaseURL(dataDir string) string {
	return "sqlite:///" + filepath.ToSlash(filepath.Join(dataDir, DatabaseFileName))
}
