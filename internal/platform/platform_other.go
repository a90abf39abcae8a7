//go:build !windows && !darwin

package platform

import (
	"os"
	"path/filepath"
)

// xdgProvider serves development hosts. The host application never shipped on
// these systems, so both roots share the XDG data directory.
type xdgProvider struct{}

func newOSProvider() Provider {
	return xdgProvider{}
}

func (xdgProvider) PluginWritableDir() (string, error) {
	return xdgDataHome()
}

func (xdgProvider) AppDataDir() (string, error) {
	return xdgDataHome()
}

func xdgDataHome() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nonEmpty("data home", "", err)
	}
	return nonEmpty("data home", filepath.Join(home, ".local", "share"), nil)
}
