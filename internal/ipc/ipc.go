package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DialTimeout bounds how long the CLI waits for the daemon socket.
const DialTimeout = 2 * time.Second

// Handler answers one request.
type Handler func(*Request) *Response

// SendRequest connects to the daemon, sends a request, and returns the response.
func SendRequest(socketPath string, req *Request) (*Response, error) {
	if socketPath == "" {
		return nil, errors.New("no socket path configured")
	}
	conn, err := net.DialTimeout("unix", socketPath, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	if err := enc.Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// Server accepts requests on a unix socket.
type Server struct {
	socketPath string
	handler    Handler
	logger     *zap.Logger

	ln net.Listener
	wg sync.WaitGroup
}

// Listen binds the socket, replacing a stale one.
func Listen(socketPath string, handler Handler, logger *zap.Logger) (*Server, error) {
	if socketPath == "" {
		return nil, errors.New("no socket path configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}
	// Remove any stale socket
	_ = os.Remove(socketPath)

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("failed to restrict socket permissions: %w", err)
	}

	return &Server{socketPath: socketPath, handler: handler, logger: logger, ln: ln}, nil
}

// Addr returns the socket path.
func (s *Server) Addr() string {
	return s.socketPath
}

// Serve handles connections until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.ln.Close()
		case <-done:
		}
	}()

	defer func() {
		s.wg.Wait()
		_ = os.Remove(s.socketPath)
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Warn("IPC accept failed", zap.Error(err))
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(30 * time.Second))

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var req Request
	if err := dec.Decode(&req); err != nil {
		_ = enc.Encode(Errorf("invalid request: %v", err))
		return
	}

	s.logger.Debug("IPC request", zap.String("command", req.Command))
	resp := s.handler(&req)
	if resp == nil {
		resp = Errorf("no response for command %q", req.Command)
	}
	if err := enc.Encode(resp); err != nil {
		s.logger.Warn("Failed to write IPC response", zap.String("command", req.Command), zap.Error(err))
	}
}
