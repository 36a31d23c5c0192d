// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bootsplash

import (
	"log/slog"

	"github.com/gogpu/bootsplash/control"
	"github.com/gogpu/bootsplash/framebuffer"
	"github.com/gogpu/bootsplash/scene"
)

// Compositor is the host's scene graph, as seen by the splash.
type Compositor interface {
	// Root is the tree new splash subtrees are attached to.
	Root() scene.Tree

	// Outputs lists the connected displays in layout order.
	Outputs() []scene.Output

	// Cursor is the seat cursor. It may be nil.
	Cursor() scene.Cursor
}

// Session is the boot splash for one compositor run.
//
// All methods must be called from the host's event loop goroutine. The
// control channel never touches the session directly; it posts Hide onto
// the loop passed to New.
type Session struct {
	state     State
	imagePath string
	opts      options

	// Original decoded size, zero when the image could not be decoded.
	imageWidth  int
	imageHeight int

	fb      *framebuffer.Renderer
	control *control.Server

	comp       Compositor
	tree       scene.Tree
	background scene.Rect
	image      scene.Node

	// Size of the image node after placement.
	placedWidth  int
	placedHeight int
}

// New creates a session for the image at imagePath.
//
// It draws the image on the framebuffer when possible, records the image
// size and starts the control channel, which posts Hide onto loop. None of
// these steps is fatal: failures are logged and the session degrades. A
// nil loop disables the control channel. New never returns nil.
func New(loop control.Poster, imagePath string, opts ...Option) *Session {
	s := &Session{
		state:     Created,
		imagePath: imagePath,
		opts:      defaultOptions(),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	s.fb = s.opts.renderer()

	if imagePath != "" {
		s.showFramebuffer()
		s.probeImage()
	} else {
		logger().Warn("no splash image configured")
	}

	s.startControl(loop)

	logger().Info("splash system initialized",
		"image", imagePath,
		"state", s.state,
		"width", s.imageWidth,
		"height", s.imageHeight)
	return s
}

func (s *Session) showFramebuffer() {
	if s.fb == nil {
		return
	}
	if err := s.fb.Show(s.imagePath); err != nil {
		logger().Warn("framebuffer splash unavailable", "error", err)
		return
	}
	s.state = FramebufferOnly
}

func (s *Session) probeImage() {
	img, err := s.opts.decoder.Decode(s.imagePath)
	if err != nil {
		logger().Warn("failed to load splash image", "path", s.imagePath, "error", err)
		return
	}
	s.imageWidth, s.imageHeight = img.Width, img.Height
}

func (s *Session) startControl(loop control.Poster) {
	if loop == nil || s.opts.controlSocket == "" {
		logger().Info("control socket disabled")
		return
	}
	srv, err := control.Listen(s.opts.controlSocket, loop, s.Hide,
		control.WithReadTimeout(s.opts.readTimeout))
	if err != nil {
		logger().Warn("control socket unavailable", "error", err)
		return
	}
	s.control = srv
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Visible reports whether the splash subtree is shown in the compositor.
func (s *Session) Visible() bool { return s.state == Visible }

// ImagePath returns the configured image path. It is empty after Destroy.
func (s *Session) ImagePath() string { return s.imagePath }

// ImageSize returns the decoded image size, or zeros when the image could
// not be decoded.
func (s *Session) ImageSize() (width, height int) {
	return s.imageWidth, s.imageHeight
}

// ControlSocket returns the bound control socket path, or "" when the
// control channel is not running.
func (s *Session) ControlSocket() string {
	if s.control == nil {
		return ""
	}
	return s.control.Path()
}

// Destroy hides the splash, stops the control channel and releases the
// scene nodes and their pixel buffer. It is safe to call more than once.
func (s *Session) Destroy() {
	if s.state == Destroyed {
		return
	}
	s.Hide()

	if s.control != nil {
		if err := s.control.Close(); err != nil {
			logger().Warn("failed to close control socket", "error", err)
		}
		s.control = nil
	}

	if s.tree != nil {
		s.tree.Destroy()
	}
	s.tree, s.background, s.image = nil, nil, nil
	s.comp = nil
	s.imagePath = ""
	s.state = Destroyed

	logger().Info("splash destroyed")
}

func logger() *slog.Logger {
	return Logger()
}
