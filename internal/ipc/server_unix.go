//go:build !windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/browserplus/logaccess/internal/logging"
)

// ErrAddressNotSocket is returned by Start when the socket path is taken by a
// file that is not a socket.
var ErrAddressNotSocket = errors.New("socket address exists and is not a socket")

// DefaultAddress returns the path to the Unix domain socket.
// On Mac/Linux: ~/.config/logaccess/logaccess.sock
func DefaultAddress() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "browserplus-logaccess.sock")
	}
	return filepath.Join(home, ".config", "logaccess", "logaccess.sock")
}

// listen creates the socket, replacing a stale socket left by a crashed server.
// Any other kind of file at address is left alone and reported as an error.
// The socket is only reachable by the owning user.
func listen(address string, logger *logging.Logger) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(address), 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	if fi, err := os.Lstat(address); err == nil {
		if fi.Mode()&os.ModeSocket == 0 {
			return nil, fmt.Errorf("%w: %s", ErrAddressNotSocket, address)
		}
		logger.Debug().Str("socket", address).Msg("Removing stale socket")
		if err := os.Remove(address); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	listener, err := net.Listen("unix", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	if err := os.Chmod(address, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}
	return listener, nil
}

// cleanup removes the socket file after the listener is closed.
func cleanup(address string) {
	os.Remove(address)
}

// ServerRunning reports whether a server is accepting connections on address.
func ServerRunning(address string) bool {
	conn, err := net.DialTimeout("unix", address, dialProbeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
