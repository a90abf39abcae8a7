package ipc

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/browserplus/logaccess/internal/logaccess"
)

// dialProbeTimeout bounds the liveness probe used by ServerRunning.
const dialProbeTimeout = 100 * time.Millisecond

// Client sends requests to a LogAccess server.
type Client struct {
	timeout time.Duration
	address string
}

// NewClient creates a client for the default address.
func NewClient() *Client {
	return NewClientWithAddress("")
}

// NewClientWithAddress creates a client for a custom socket path or pipe name.
func NewClientWithAddress(address string) *Client {
	if address == "" {
		address = DefaultAddress()
	}
	return &Client{
		timeout: 5 * time.Second,
		address: address,
	}
}

// SetTimeout sets the connection and round-trip timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// Get returns the host log files visible to origin.
func (c *Client) Get(ctx context.Context, origin string) ([]string, error) {
	return c.files(ctx, NewRequest(uuid.NewString(), MethodGet, origin))
}

// GetServiceLogs returns the log files of the named services.
func (c *Client) GetServiceLogs(ctx context.Context, origin string, services []string) ([]string, error) {
	return c.files(ctx, NewServiceLogsRequest(uuid.NewString(), origin, services))
}

// Describe returns the server's service description.
func (c *Client) Describe(ctx context.Context) (*logaccess.Description, error) {
	resp, err := c.sendRequest(ctx, NewRequest(uuid.NewString(), MethodDescribe, ""))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	desc := resp.GetDescription()
	if desc == nil {
		return nil, fmt.Errorf("response carries no description")
	}
	return desc, nil
}

// IsServerRunning checks if the server answers a describe request.
func (c *Client) IsServerRunning(ctx context.Context) bool {
	_, err := c.Describe(ctx)
	return err == nil
}

func (c *Client) files(ctx context.Context, req *Request) ([]string, error) {
	resp, err := c.sendRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	data := resp.GetFilesData()
	if data == nil {
		return nil, fmt.Errorf("response carries no file list")
	}
	return data.Files, nil
}

// sendRequest sends a request and receives a response.
func (c *Client) sendRequest(ctx context.Context, req *Request) (*Response, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetDeadline(deadline)

	data, err := req.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	resp, err := DecodeResponse(respData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	return resp, nil
}
