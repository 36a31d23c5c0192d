// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bootsplash

import (
	"log/slog"

	"github.com/gogpu/bootsplash/internal/logging"
)

// SetLogger configures the logger for bootsplash and all its sub-packages.
// By default nothing is logged. Pass nil to restore silence.
//
// Log levels used:
//   - [slog.LevelDebug]: ignored control messages, buffer teardown
//   - [slog.LevelInfo]: lifecycle transitions, detected resolutions
//   - [slog.LevelWarn]: degraded modes (no framebuffer preview, no control socket)
//   - [slog.LevelError]: scene graph failures, unexpected I/O errors
//
// Example:
//
//	bootsplash.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
