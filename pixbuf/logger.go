// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixbuf

import (
	"log/slog"

	"github.com/gogpu/bootsplash/internal/logging"
)

func logger() *slog.Logger { return logging.Logger() }
