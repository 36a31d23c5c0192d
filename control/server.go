// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package control

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/gogpu/bootsplash/internal/logging"
)

// Protocol constants.
const (
	// DefaultSocketPath is where boot actors expect the control socket.
	DefaultSocketPath = "/tmp/strux-cage-control.sock"

	// CommandHideSplash is the only recognized command.
	CommandHideSplash = "HIDE_SPLASH"

	// Backlog is the listen backlog of the control socket.
	Backlog = 5

	// MaxMessageSize is the most bytes read from one connection. Longer
	// messages are truncated.
	MaxMessageSize = 255

	// DefaultReadTimeout bounds how long a connected client may stay
	// silent before the connection is dropped.
	DefaultReadTimeout = 30 * time.Second

	socketMode = 0o666
)

// ErrAlreadyBound is returned by Listen for a path that this process has
// already bound once.
var ErrAlreadyBound = errors.New("control: socket path already bound by this process")

// Poster queues work onto the host's event loop. *eventloop.Loop
// implements it.
type Poster interface {
	Post(fn func()) bool
}

// boundPaths records every path Listen has claimed. A path is unlinked and
// bound at most once per process.
var (
	boundMu    sync.Mutex
	boundPaths = make(map[string]struct{})
)

func claimPath(path string) error {
	boundMu.Lock()
	defer boundMu.Unlock()
	if _, ok := boundPaths[path]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, path)
	}
	boundPaths[path] = struct{}{}
	return nil
}

// Option configures a Server.
type Option func(*Server)

// WithReadTimeout sets how long a connection may stay silent. Zero
// disables the timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = d
	}
}

// Server accepts one-shot control connections on a Unix stream socket.
//
// Each connection is read once. If the bytes up to the first NUL equal
// CommandHideSplash, the hide callback is posted onto the event loop.
// The connection is then closed without a reply, whatever it contained.
// Connection goroutines only do I/O; the callback always runs on the loop.
type Server struct {
	path        string
	loop        Poster
	onHide      func()
	readTimeout time.Duration
	listener    net.Listener
	logger      *slog.Logger

	activeConnections sync.WaitGroup
	closeOnce         sync.Once

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// Listen removes any stale socket at path, binds a new one with mode 0666
// and starts accepting connections. onHide runs on loop for every
// CommandHideSplash received.
func Listen(path string, loop Poster, onHide func(), opts ...Option) (*Server, error) {
	if path == "" {
		return nil, errors.New("control: empty socket path")
	}
	if loop == nil || onHide == nil {
		return nil, errors.New("control: nil event loop or handler")
	}
	path = filepath.Clean(path)
	if err := claimPath(path); err != nil {
		return nil, err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("control: removing stale socket %s: %w", path, err)
	}

	listener, err := listenUnix(path, Backlog)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, socketMode); err != nil {
		_ = listener.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("control: chmod %s: %w", path, err)
	}

	s := &Server{
		path:        path,
		loop:        loop,
		onHide:      onHide,
		readTimeout: DefaultReadTimeout,
		listener:    listener,
		logger:      logging.Logger().With("socket", path),
		conns:       make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.activeConnections.Add(1)
	go func() {
		defer s.activeConnections.Done()
		s.serve()
	}()

	s.logger.Info("control socket listening")
	return s, nil
}

// listenUnix creates a listening Unix stream socket with an explicit
// backlog, which net.Listen does not expose.
func listenUnix(path string, backlog int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("control: socket: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("control: bind %s: %w", path, err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		_ = os.Remove(path)
		return nil, fmt.Errorf("control: listen %s: %w", path, err)
	}

	// FileListener duplicates the descriptor; the original is closed here.
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()
	listener, err := net.FileListener(f)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("control: listener %s: %w", path, err)
	}
	return listener, nil
}

// Path returns the socket path.
func (s *Server) Path() string { return s.path }

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("failed to accept control connection", "error", err)
			continue
		}

		if !s.track(conn) {
			_ = conn.Close()
			return
		}
		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			defer s.untrack(conn)
			s.handleConnection(conn)
		}()
	}
}

// track registers a live connection. It reports false once Close has
// started.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// handleConnection reads exactly one message and closes the connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}

	var buf [MaxMessageSize]byte
	n, err := conn.Read(buf[:])
	if n == 0 {
		s.logger.Debug("control connection closed without a message", "error", err)
		return
	}

	command := ParseCommand(buf[:n])
	if command != CommandHideSplash {
		s.logger.Debug("ignoring unrecognized control message", "bytes", n)
		return
	}

	s.logger.Info("received control command", "command", command)
	if !s.loop.Post(s.onHide) {
		s.logger.Warn("event loop closed, dropping control command", "command", command)
	}
}

// ParseCommand returns the text of a raw message: everything before the
// first NUL byte. No whitespace or newline is trimmed.
func ParseCommand(msg []byte) string {
	if i := bytes.IndexByte(msg, 0); i >= 0 {
		msg = msg[:i]
	}
	return string(msg)
}

// Close stops accepting connections, waits for in-flight connections to
// finish and removes the socket file. Close is idempotent.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.listener.Close()

		// Silent clients would otherwise hold Close until their read
		// deadline.
		s.mu.Lock()
		for conn := range s.conns {
			_ = conn.Close()
		}
		s.conns = nil
		s.mu.Unlock()

		s.activeConnections.Wait()
		if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = rmErr
		}
		s.logger.Info("control socket closed")
	})
	return err
}
