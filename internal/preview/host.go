// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preview hosts a splash session in a desktop window. It plays the
// compositor's part: it owns the scene graph, dispatches the event loop
// once per frame and renders the scene into a pixel buffer the window
// uploads.
package preview

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/bootsplash"
	"github.com/gogpu/bootsplash/eventloop"
	"github.com/gogpu/bootsplash/internal/logging"
	"github.com/gogpu/bootsplash/scene"
)

// Desktop is the color of the stand-in application surface drawn below
// the splash.
var Desktop = color.NRGBA{R: 0x2E, G: 0x34, B: 0x40, A: 0xFF}

// OutputName is the name of the single output the window provides.
const OutputName = "preview-1"

// Host drives one session. All methods run on the window's update
// goroutine, which is also the event loop goroutine.
type Host struct {
	loop    *eventloop.Loop
	session *bootsplash.Session
	graph   *scene.Graph
	desktop scene.Rect

	width  int
	height int
	canvas *image.RGBA

	started   time.Time
	showDelay time.Duration
	shown     bool
}

// NewHost creates a host with a width×height output and a desktop
// surface. The splash is moved into the scene showDelay after the first
// Step, simulating compositor startup.
func NewHost(loop *eventloop.Loop, session *bootsplash.Session, width, height int, showDelay time.Duration) (*Host, error) {
	graph := scene.NewGraph()
	app, err := graph.Root().NewTree()
	if err != nil {
		return nil, err
	}
	desktop, err := app.NewRect(width, height, Desktop)
	if err != nil {
		return nil, err
	}

	h := &Host{
		loop:      loop,
		session:   session,
		graph:     graph,
		desktop:   desktop,
		showDelay: showDelay,
	}
	h.Resize(width, height)
	return h, nil
}

// Graph returns the host's scene graph.
func (h *Host) Graph() *scene.Graph { return h.graph }

// Size returns the current output size.
func (h *Host) Size() (int, int) { return h.width, h.height }

// Resize changes the output size, as a monitor mode change would.
// Non-positive sizes and unchanged sizes are ignored.
func (h *Host) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == h.width && height == h.height) {
		return
	}
	h.width, h.height = width, height
	h.graph.SetOutputs(scene.Output{Name: OutputName, Enabled: true, Width: width, Height: height})
	h.desktop.SetSize(width, height)
	h.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	h.session.UpdateGeometry(width, height)
	logging.Logger().Debug("preview output resized", "width", width, "height", height)
}

// Step runs queued event loop work and shows the splash once the startup
// delay has passed. It returns the number of functions dispatched.
func (h *Host) Step(now time.Time) int {
	if h.started.IsZero() {
		h.started = now
	}
	n := h.loop.Dispatch()
	if !h.shown && now.Sub(h.started) >= h.showDelay {
		h.session.ShowInCompositor(h.graph)
		h.shown = true
	}
	return n
}

// Show re-shows the splash after it was hidden.
func (h *Host) Show() {
	if h.shown {
		h.session.ShowInCompositor(h.graph)
	}
}

// Hide hides the splash locally, as a HIDE_SPLASH message would.
func (h *Host) Hide() {
	h.session.Hide()
}

// CursorHidden reports whether the scene asks for the cursor to be hidden.
func (h *Host) CursorHidden() bool {
	return h.graph.Pointer().Hidden()
}

// Frame renders the scene and returns the premultiplied RGBA pixels. The
// image is reused across calls.
func (h *Host) Frame() *image.RGBA {
	draw.Draw(h.canvas, h.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	h.graph.Render(h.canvas)
	return h.canvas
}

// Close destroys the session and stops the event loop.
func (h *Host) Close() {
	h.session.Destroy()
	h.loop.Close()
	h.loop.Dispatch()
}
