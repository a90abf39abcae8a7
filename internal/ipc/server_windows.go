//go:build windows

package ipc

import (
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
	"golang.org/x/sys/windows"

	"github.com/browserplus/logaccess/internal/logging"
)

// DefaultAddress returns the named pipe path.
func DefaultAddress() string {
	return PipeName
}

// listen creates the named pipe. The DACL grants access to the current user
// only, so one user cannot read another user's log file paths.
func listen(address string, logger *logging.Logger) (net.Listener, error) {
	sid, err := getCurrentUserSID()
	if err != nil {
		return nil, err
	}

	cfg := &winio.PipeConfig{
		SecurityDescriptor: fmt.Sprintf("D:P(A;;GA;;;%s)", sid),
		MessageMode:        true,
		InputBufferSize:    4096,
		OutputBufferSize:   4096,
	}

	listener, err := winio.ListenPipe(address, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create named pipe: %w", err)
	}
	logger.Debug().Str("owner_sid", sid).Msg("Named pipe restricted to owner")
	return listener, nil
}

// cleanup is a no-op; the pipe disappears with its last handle.
func cleanup(string) {}

// getCurrentUserSID returns the SID of the current process owner.
func getCurrentUserSID() (string, error) {
	token, err := windows.OpenCurrentProcessToken()
	if err != nil {
		return "", fmt.Errorf("failed to open process token: %w", err)
	}
	defer token.Close()

	user, err := token.GetTokenUser()
	if err != nil {
		return "", fmt.Errorf("failed to get token user: %w", err)
	}

	return user.User.Sid.String(), nil
}
