//go:build windows

package ipc

import (
	"context"
	"errors"
	"syscall"

	"github.com/Microsoft/go-winio"
)

// Windows error codes for named pipes
const (
	ERROR_FILE_NOT_FOUND = syscall.Errno(2)
	ERROR_PIPE_BUSY      = syscall.Errno(231)
	ERROR_ACCESS_DENIED  = syscall.Errno(5)
)

// ServerRunning checks if the named pipe exists (another server may own it).
// Returns false only if the pipe does not exist (ERROR_FILE_NOT_FOUND);
// os.IsNotExist is unreliable for pipes.
func ServerRunning(address string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), dialProbeTimeout)
	defer cancel()

	conn, err := winio.DialPipeContext(ctx, address)
	if conn != nil {
		conn.Close()
		return true
	}
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == ERROR_FILE_NOT_FOUND {
			return false
		}
		// ERROR_PIPE_BUSY, ERROR_ACCESS_DENIED -> pipe exists
		return true
	}

	// Timeouts and other failures: assume the pipe exists
	return true
}
