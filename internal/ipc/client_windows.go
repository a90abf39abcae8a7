//go:build windows

package ipc

import (
	"context"
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
)

// connect establishes a connection to the named pipe.
func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := winio.DialPipeContext(dialCtx, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IPC server at %s: %w", c.address, err)
	}
	return conn, nil
}
