// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bootsplash

import (
	"time"

	"github.com/gogpu/bootsplash/control"
	"github.com/gogpu/bootsplash/framebuffer"
	"github.com/gogpu/bootsplash/raster"
)

// Option configures a Session during creation.
//
// Example:
//
//	s := bootsplash.New(loop, "/usr/share/splash.png",
//	    bootsplash.WithControlSocket("/run/splash.sock"),
//	    bootsplash.WithPlacement(raster.PlaceFit),
//	)
type Option func(*options)

type options struct {
	controlSocket  string
	framebuffer    *framebuffer.Renderer
	decoder        raster.Decoder
	placement      raster.Placement
	fallbackWidth  int
	fallbackHeight int
	readTimeout    time.Duration
}

func defaultOptions() options {
	return options{
		controlSocket:  control.DefaultSocketPath,
		framebuffer:    framebuffer.New(),
		decoder:        raster.FileDecoder{},
		placement:      raster.PlaceCenter,
		fallbackWidth:  framebuffer.DefaultWidth,
		fallbackHeight: framebuffer.DefaultHeight,
		readTimeout:    control.DefaultReadTimeout,
	}
}

// WithControlSocket sets the control socket path. An empty path disables
// the control channel.
func WithControlSocket(path string) Option {
	return func(o *options) {
		o.controlSocket = path
	}
}

// WithFramebuffer sets the renderer for the pre-compositor preview. Nil
// disables the framebuffer path. Fields left zero in r take the session's
// decoder, placement and fallback size.
func WithFramebuffer(r *framebuffer.Renderer) Option {
	return func(o *options) {
		o.framebuffer = r
	}
}

// WithDecoder sets the image decoder used by both display paths.
func WithDecoder(d raster.Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}

// WithPlacement sets the oversized image policy for both display paths.
func WithPlacement(p raster.Placement) Option {
	return func(o *options) {
		o.placement = p
	}
}

// WithFallbackSize sets the screen size assumed when no output is enabled
// and the framebuffer size is unknown. Non-positive values are ignored.
func WithFallbackSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.fallbackWidth, o.fallbackHeight = width, height
		}
	}
}

// WithReadTimeout bounds how long a control client may stay silent.
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// renderer returns a copy of the configured framebuffer renderer with the
// session-wide settings filled in, or nil when disabled.
func (o *options) renderer() *framebuffer.Renderer {
	if o.framebuffer == nil {
		return nil
	}
	r := *o.framebuffer
	if r.Decoder == nil {
		r.Decoder = o.decoder
	}
	if r.Placement == raster.PlaceCenter {
		r.Placement = o.placement
	}
	if r.FallbackWidth <= 0 || r.FallbackHeight <= 0 {
		r.FallbackWidth, r.FallbackHeight = o.fallbackWidth, o.fallbackHeight
	}
	return &r
}
