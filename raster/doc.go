// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster decodes splash images into straight-alpha RGBA8 rasters
// and converts them into the layouts the display paths need.
//
// A raster is decoded at most once per consumer: the framebuffer renderer
// and the scene presenter each decode the file themselves and never share
// pixel memory.
package raster

import (
	"log/slog"

	"github.com/gogpu/bootsplash/internal/logging"
)

func logger() *slog.Logger { return logging.Logger() }
