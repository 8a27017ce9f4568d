package config

import (
	"os"
	"path/filepath"
)

// AppName names the per-user config and state directories.
const AppName = "waymenu"

// HomeEnv overrides both the config and the state directory when set.
const HomeEnv = "WAYMENU_HOME"

const (
	configFileName  = "config.jsonc"
	styleFileName   = "style.jsonc"
	historyFileName = "history"
)

// userHome returns $HOME, falling back to the current directory.
func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ConfigDir returns $WAYMENU_HOME, $XDG_CONFIG_HOME/waymenu or ~/.config/waymenu.
func ConfigDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(userHome(), ".config", AppName)
}

// StateDir returns $WAYMENU_HOME, $XDG_STATE_HOME/waymenu or ~/.local/state/waymenu.
func StateDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(userHome(), ".local", "state", AppName)
}

// ConfigPath returns override when non-empty, else the default config.jsonc path.
func ConfigPath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(ConfigDir(), configFileName)
}

// StylePath returns override when non-empty, else the default style.jsonc path.
func StylePath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(ConfigDir(), styleFileName)
}

// HistoryPath returns the launch history file path.
func HistoryPath() string {
	return filepath.Join(StateDir(), historyFileName)
}
