package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/browserplus/logaccess/internal/logging"
)

// connDeadline bounds the time a client may take to send a request and read
// the response.
const connDeadline = 30 * time.Second

// maxRequestSize caps a single request line.
const maxRequestSize = 1 << 20

// ErrServerRunning is returned by Start when another server owns the address.
var ErrServerRunning = errors.New("another LogAccess server is already listening")

// Server answers IPC requests, one request per connection.
type Server struct {
	handler  Handler
	logger   *logging.Logger
	address  string
	listener net.Listener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a server for handler listening on address. An empty
// address selects DefaultAddress().
func NewServer(handler Handler, logger *logging.Logger, address string) *Server {
	if address == "" {
		address = DefaultAddress()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		handler: handler,
		logger:  logger.Component("ipc"),
		address: address,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Address returns the socket path or pipe name the server listens on.
func (s *Server) Address() string {
	return s.address
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	if ServerRunning(s.address) {
		return fmt.Errorf("%w at %s", ErrServerRunning, s.address)
	}

	listener, err := listen(s.address, s.logger)
	if err != nil {
		return err
	}
	s.listener = listener

	s.logger.Info().Str("address", s.address).Msg("IPC server started")

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and waits for in-flight requests.
func (s *Server) Stop() {
	s.logger.Debug().Msg("Stopping IPC server")
	s.cancel()

	if s.listener != nil {
		s.listener.Close()
	}

	s.wg.Wait()
	cleanup(s.address)
	s.logger.Info().Msg("IPC server stopped")
}

// Done is closed once Stop has been called.
func (s *Server) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn().Err(err).Msg("Failed to accept IPC connection")
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection reads one request line, dispatches it and writes one
// response line.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(connDeadline))

	reader := bufio.NewReader(io.LimitReader(conn, maxRequestSize))
	data, err := reader.ReadBytes('\n')
	if err != nil {
		if err != io.EOF {
			s.logger.Warn().Err(err).Msg("Failed to read IPC request")
		}
		return
	}

	req, err := DecodeRequest(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode IPC request")
		s.sendResponse(conn, NewErrorResponse("", CodeInvalidRequest, "invalid request format"))
		return
	}

	s.logger.Debug().
		Str("id", req.ID).
		Str("method", string(req.Method)).
		Str("origin", req.Origin).
		Msg("Received IPC request")

	s.sendResponse(conn, s.dispatch(req))
}

// dispatch converts a handler panic into an internal error response.
func (s *Server) dispatch(req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("id", req.ID).
				Str("method", string(req.Method)).
				Interface("panic", r).
				Msg("IPC handler panicked")
			resp = NewErrorResponse(req.ID, CodeInternalError, "internal error")
		}
	}()
	return Dispatch(s.handler, req)
}

// sendResponse writes a response followed by the newline delimiter.
func (s *Server) sendResponse(conn net.Conn, resp *Response) {
	data, err := resp.Encode()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode IPC response")
		return
	}
	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to send IPC response")
	}
}
