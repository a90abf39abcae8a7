// Package platform reports the per-user data directories the host application
// writes its logs beneath.
package platform

import (
	"fmt"

	"github.com/browserplus/logaccess/internal/logdir"
)

// Provider returns the OS data roots. Implementations must not cache failures;
// every call either returns an absolute path or an error wrapping
// logdir.ErrPlatformRootUnavailable.
type Provider interface {
	// PluginWritableDir is the directory a sandboxed browser plugin may write to.
	PluginWritableDir() (string, error)

	// AppDataDir is the per-user application data directory.
	AppDataDir() (string, error)
}

// NewProvider returns the provider for the running OS.
func NewProvider() Provider {
	return newOSProvider()
}

// Static is a Provider with fixed roots, used by tests and the --root override.
type Static struct {
	PluginWritable string
	AppData        string
}

// PluginWritableDir implements Provider.
func (s Static) PluginWritableDir() (string, error) {
	return nonEmpty("plugin writable dir", s.PluginWritable, nil)
}

// AppDataDir implements Provider.
func (s Static) AppDataDir() (string, error) {
	return nonEmpty("app data dir", s.AppData, nil)
}

// nonEmpty normalizes the result of an OS lookup so that both an error and an
// empty path surface as ErrPlatformRootUnavailable.
func nonEmpty(what, path string, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", logdir.ErrPlatformRootUnavailable, what, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: %s is empty", logdir.ErrPlatformRootUnavailable, what)
	}
	return path, nil
}
