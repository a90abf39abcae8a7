package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// LogDirectory returns the directory for the service's own log file.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\BrowserPlus\LogAccess\logs
//   - Unix: ~/.config/logaccess/logs
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "logaccess-logs")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "BrowserPlus", "LogAccess", "logs")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "logaccess-logs")
		}
		return filepath.Join(homeDir, ".config", "logaccess", "logs")
	}
	return filepath.Join(configDir, "logaccess", "logs")
}

// EnsureLogDirectory creates the log directory with owner-only permissions.
func EnsureLogDirectory() error {
	return os.MkdirAll(LogDirectory(), 0700)
}

// LogFilePath is the rotating log file used by "logaccess serve".
func LogFilePath() string {
	return filepath.Join(LogDirectory(), "logaccess.log")
}
