// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package control

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/bootsplash/eventloop"
)

// socketDir returns a short directory for Unix sockets. t.TempDir can
// exceed the 108-byte sun_path limit under some test runners.
func socketDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("/tmp", "splash-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir
}

type harness struct {
	path   string
	loop   *eventloop.Loop
	server *Server
	hides  atomic.Int32
}

func startServer(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		path: filepath.Join(socketDir(t), "control.sock"),
		loop: eventloop.New(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.loop.Run(ctx)
	}()

	srv, err := Listen(h.path, h.loop, func() { h.hides.Add(1) }, opts...)
	if err != nil {
		cancel()
		t.Fatalf("Listen() error = %v", err)
	}
	h.server = srv

	t.Cleanup(func() {
		_ = srv.Close()
		cancel()
		<-done
	})
	return h
}

// settle waits until every hide posted so far has run on the loop.
func (h *harness) settle(t *testing.T) int32 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.loop.Call(ctx, func() {}); err != nil {
		t.Fatalf("loop.Call() error = %v", err)
	}
	return h.hides.Load()
}

func send(t *testing.T, path, msg string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Send(ctx, path, msg); err != nil {
		t.Fatalf("Send(%q) error = %v", msg, err)
	}
}

func TestServer_HideSplash(t *testing.T) {
	h := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := HideSplash(ctx, h.path); err != nil {
		t.Fatalf("HideSplash() error = %v", err)
	}
	if got := h.settle(t); got != 1 {
		t.Errorf("hide ran %d times, want 1", got)
	}
}

func TestServer_Messages(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want int32
	}{
		{"exact", "HIDE_SPLASH", 1},
		{"garbage", "GARBAGE", 0},
		{"trailing newline", "HIDE_SPLASH\n", 0},
		{"lowercase", "hide_splash", 0},
		{"prefix", "HIDE", 0},
		{"nul terminated", "HIDE_SPLASH\x00ignored", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := startServer(t)
			send(t, h.path, tt.msg) // returns only after the server closed
			if got := h.settle(t); got != tt.want {
				t.Errorf("hide ran %d times for %q, want %d", got, tt.msg, tt.want)
			}
		})
	}
}

func TestServer_EmptyConnection(t *testing.T) {
	h := startServer(t)
	conn, err := net.Dial("unix", h.path)
	if err != nil {
		t.Fatal(err)
	}
	_ = conn.Close()

	send(t, h.path, "GARBAGE")
	if got := h.settle(t); got != 0 {
		t.Errorf("hide ran %d times, want 0", got)
	}
}

func TestServer_OversizedMessageTruncated(t *testing.T) {
	h := startServer(t)
	conn, err := net.Dial("unix", h.path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	msg := CommandHideSplash + strings.Repeat("x", 400)
	if _, err := conn.Write([]byte(msg)); err != nil {
		t.Fatal(err)
	}
	// Server closes after one read; any read result is fine.
	var b [1]byte
	_, _ = conn.Read(b[:])

	if got := h.settle(t); got != 0 {
		t.Errorf("hide ran %d times, want 0", got)
	}
}

func TestServer_ConnectionClosedAfterOneMessage(t *testing.T) {
	h := startServer(t)
	conn, err := net.Dial("unix", h.path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	if _, err := conn.Write([]byte("GARBAGE")); err != nil {
		t.Fatal(err)
	}
	var b [16]byte
	n, err := conn.Read(b[:])
	if n != 0 || err == nil {
		t.Errorf("Read() = %d, %v, want 0 bytes and a close error (no reply)", n, err)
	}
}

func TestServer_SocketFile(t *testing.T) {
	h := startServer(t)
	info, err := os.Stat(h.path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSocket == 0 {
		t.Errorf("mode = %v, want a socket", info.Mode())
	}
	if perm := info.Mode().Perm(); perm != 0o666 {
		t.Errorf("permissions = %o, want 666", perm)
	}

	if err := h.server.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(h.path); !os.IsNotExist(err) {
		t.Errorf("socket file still present after Close: %v", err)
	}
	if err := h.server.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestListen_RemovesStaleFile(t *testing.T) {
	path := filepath.Join(socketDir(t), "stale.sock")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	loop := eventloop.New()
	srv, err := Listen(path, loop, func() {})
	if err != nil {
		t.Fatalf("Listen() over stale file error = %v", err)
	}
	defer srv.Close()
	if srv.Path() != path {
		t.Errorf("Path() = %q, want %q", srv.Path(), path)
	}
}

func TestListen_AtMostOncePerPath(t *testing.T) {
	path := filepath.Join(socketDir(t), "once.sock")
	loop := eventloop.New()
	srv, err := Listen(path, loop, func() {})
	if err != nil {
		t.Fatal(err)
	}
	_ = srv.Close()

	if _, err := Listen(path, loop, func() {}); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("second Listen() error = %v, want ErrAlreadyBound", err)
	}
}

func TestListen_InvalidArguments(t *testing.T) {
	loop := eventloop.New()
	if _, err := Listen("", loop, func() {}); err == nil {
		t.Error("Listen(\"\") should fail")
	}
	if _, err := Listen(filepath.Join(socketDir(t), "x.sock"), loop, nil); err == nil {
		t.Error("Listen with nil handler should fail")
	}
}

func TestServer_CloseWithSilentClient(t *testing.T) {
	h := startServer(t, WithReadTimeout(0))
	conn, err := net.Dial("unix", h.path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// Give the server a moment to accept before closing.
	send(t, h.path, "GARBAGE")

	closed := make(chan error, 1)
	go func() { closed <- h.server.Close() }()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked on a silent client")
	}
}

func TestSend_NoServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := Send(ctx, filepath.Join(socketDir(t), "absent.sock"), CommandHideSplash); err == nil {
		t.Error("Send() to a missing socket should fail")
	}
	if err := Send(ctx, "/unused", strings.Repeat("x", MaxMessageSize+1)); err == nil {
		t.Error("Send() with an oversized command should fail")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HIDE_SPLASH", "HIDE_SPLASH"},
		{"HIDE_SPLASH\x00junk", "HIDE_SPLASH"},
		{"\x00HIDE_SPLASH", ""},
		{"HIDE_SPLASH\r\n", "HIDE_SPLASH\r\n"},
	}
	for _, tt := range tests {
		if got := ParseCommand([]byte(tt.in)); got != tt.want {
			t.Errorf("ParseCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
