// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package control implements the splash control channel: a Unix stream
// socket on which a boot actor sends the text HIDE_SPLASH once the real
// session is ready.
//
// The protocol is one message per connection. The server reads at most
// MaxMessageSize bytes, compares the text up to the first NUL byte exactly
// against CommandHideSplash, and closes the connection. Nothing is ever
// written back. Unrecognized payloads and empty connections are ignored.
//
//	srv, err := control.Listen(control.DefaultSocketPath, loop, session.Hide)
//	...
//	err = control.HideSplash(ctx, control.DefaultSocketPath) // from the boot actor
package control
