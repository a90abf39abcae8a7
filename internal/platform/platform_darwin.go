//go:build darwin

package platform

import (
	"os"
	"path/filepath"
)

type darwinProvider struct{}

func newOSProvider() Provider {
	return darwinProvider{}
}

func (darwinProvider) PluginWritableDir() (string, error) {
	return applicationSupport()
}

func (darwinProvider) AppDataDir() (string, error) {
	return applicationSupport()
}

// applicationSupport returns ~/Library/Application Support.
func applicationSupport() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nonEmpty("application support dir", "", err)
	}
	return nonEmpty("application support dir", filepath.Join(home, "Library", "Application Support"), nil)
}
