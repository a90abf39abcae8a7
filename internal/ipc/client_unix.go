//go:build !windows

package ipc

import (
	"context"
	"fmt"
	"net"
)

// connect establishes a connection to the Unix socket.
func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: c.timeout}

	conn, err := dialer.DialContext(ctx, "unix", c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IPC server at %s: %w", c.address, err)
	}
	return conn, nil
}
