// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bootsplash

import (
	"testing"
	"time"

	"github.com/gogpu/bootsplash/control"
	"github.com/gogpu/bootsplash/framebuffer"
	"github.com/gogpu/bootsplash/raster"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.controlSocket != control.DefaultSocketPath {
		t.Errorf("controlSocket = %q, want %q", o.controlSocket, control.DefaultSocketPath)
	}
	if o.framebuffer == nil {
		t.Error("framebuffer preview should be enabled by default")
	}
	if o.placement != raster.PlaceCenter {
		t.Errorf("placement = %v, want center", o.placement)
	}
	if o.fallbackWidth != 1280 || o.fallbackHeight != 800 {
		t.Errorf("fallback = %dx%d, want 1280x800", o.fallbackWidth, o.fallbackHeight)
	}
	if o.readTimeout != control.DefaultReadTimeout {
		t.Errorf("readTimeout = %v, want %v", o.readTimeout, control.DefaultReadTimeout)
	}
}

func TestOptions(t *testing.T) {
	dec := raster.DecoderFunc(func(string) (*raster.Image, error) { return nil, nil })
	o := defaultOptions()
	for _, opt := range []Option{
		WithControlSocket(""),
		WithFramebuffer(nil),
		WithDecoder(dec),
		WithDecoder(nil), // ignored
		WithPlacement(raster.PlaceFit),
		WithFallbackSize(640, 480),
		WithFallbackSize(0, 480), // ignored
		WithReadTimeout(time.Second),
	} {
		opt(&o)
	}

	if o.controlSocket != "" {
		t.Errorf("controlSocket = %q, want disabled", o.controlSocket)
	}
	if o.framebuffer != nil {
		t.Error("framebuffer should be disabled")
	}
	if o.decoder == nil {
		t.Error("WithDecoder(nil) must not clear the decoder")
	}
	if o.placement != raster.PlaceFit {
		t.Errorf("placement = %v, want fit", o.placement)
	}
	if o.fallbackWidth != 640 || o.fallbackHeight != 480 {
		t.Errorf("fallback = %dx%d, want 640x480", o.fallbackWidth, o.fallbackHeight)
	}
	if o.readTimeout != time.Second {
		t.Errorf("readTimeout = %v, want 1s", o.readTimeout)
	}
	if o.renderer() != nil {
		t.Error("renderer() should be nil when the framebuffer is disabled")
	}
}

func TestOptionsRenderer(t *testing.T) {
	given := &framebuffer.Renderer{DevicePath: "/dev/fb1"}
	o := defaultOptions()
	WithFramebuffer(given)(&o)
	WithPlacement(raster.PlaceFit)(&o)
	WithFallbackSize(320, 240)(&o)

	r := o.renderer()
	if r == given {
		t.Fatal("renderer() must return a copy")
	}
	if r.DevicePath != "/dev/fb1" {
		t.Errorf("DevicePath = %q, want /dev/fb1", r.DevicePath)
	}
	if r.Decoder == nil {
		t.Error("renderer should inherit the session decoder")
	}
	if r.Placement != raster.PlaceFit {
		t.Errorf("Placement = %v, want fit", r.Placement)
	}
	if r.FallbackWidth != 320 || r.FallbackHeight != 240 {
		t.Errorf("fallback = %dx%d, want 320x240", r.FallbackWidth, r.FallbackHeight)
	}
	if given.Decoder != nil || given.Placement != raster.PlaceCenter {
		t.Error("renderer() modified the caller's renderer")
	}
}
