// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Send delivers one command to the control socket at path and waits until
// the server has closed the connection, which happens after the command
// has been handed to the event loop.
func Send(ctx context.Context, path, command string) error {
	if len(command) > MaxMessageSize {
		return fmt.Errorf("control: command longer than %d bytes", MaxMessageSize)
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return fmt.Errorf("control: dial %s: %w", path, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, command); err != nil {
		return fmt.Errorf("control: write: %w", err)
	}

	// The server never replies; EOF means it is done with us.
	if _, err := io.Copy(io.Discard, conn); err != nil && !isExpectedCloseError(err) {
		return fmt.Errorf("control: waiting for close: %w", err)
	}
	return nil
}

// HideSplash asks the splash listening on path to hide.
func HideSplash(ctx context.Context, path string) error {
	return Send(ctx, path, CommandHideSplash)
}

// isExpectedCloseError reports whether err is a normal connection
// termination.
func isExpectedCloseError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}
