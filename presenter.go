// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bootsplash

import (
	"image/color"

	"github.com/gogpu/bootsplash/framebuffer"
	"github.com/gogpu/bootsplash/pixbuf"
	"github.com/gogpu/bootsplash/scene"
)

// Background is the color of the full-screen rectangle behind the image.
var Background = color.NRGBA{A: 0xFF}

// ShowInCompositor moves the splash into the compositor's scene graph.
//
// It creates a splash subtree holding a black full-screen rectangle and
// the centered image, raises it above every other surface and hides the
// cursor. If the image cannot be decoded the subtree holds the background
// only and the session still becomes Visible.
//
// Calling it while Visible or Destroyed, or without an image path, does
// nothing. From Hidden it re-enables the existing subtree and recenters it.
func (s *Session) ShowInCompositor(comp Compositor) {
	if s.imagePath == "" || comp == nil {
		return
	}
	switch s.state {
	case Visible, Destroyed:
		return
	case Hidden:
		s.reshow()
		return
	}

	if s.fb != nil {
		// The compositor owns the display now.
		if err := s.fb.Clear(); err != nil {
			logger().Debug("framebuffer not cleared", "error", err)
		}
	}

	tree, err := comp.Root().NewTree()
	if err != nil {
		logger().Error("failed to create splash scene tree", "error", err)
		return
	}

	width, height := s.screenSize(comp)
	bg, err := tree.NewRect(width, height, Background)
	if err != nil {
		logger().Error("failed to create splash background", "error", err)
		tree.Destroy()
		return
	}

	s.comp = comp
	s.tree = tree
	s.background = bg
	s.attachImage(width, height)

	tree.RaiseToTop()
	s.hideCursor()
	s.state = Visible

	logger().Info("splash shown in compositor",
		"width", width,
		"height", height,
		"image", s.image != nil)
}

// attachImage decodes the image, hands its pixels to a new buffer node and
// centers it. Failures leave the subtree with the background only.
func (s *Session) attachImage(width, height int) {
	img, err := s.opts.decoder.Decode(s.imagePath)
	if err != nil {
		logger().Error("failed to load splash image for compositor", "path", s.imagePath, "error", err)
		return
	}
	if s.imageWidth == 0 || s.imageHeight == 0 {
		s.imageWidth, s.imageHeight = img.Width, img.Height
	}
	img = s.opts.placement.Apply(img, width, height)

	buf, err := pixbuf.FromRaster(img)
	if err != nil {
		logger().Error("failed to create splash pixel buffer", "error", err)
		return
	}
	node, err := s.tree.NewBuffer(buf)
	// The node holds its own reference.
	buf.Release()
	if err != nil {
		logger().Error("failed to create splash image node", "error", err)
		return
	}

	s.image = node
	s.placedWidth, s.placedHeight = img.Width, img.Height
	s.center(width, height)
}

// reshow re-enables a hidden subtree at the current output size.
func (s *Session) reshow() {
	s.tree.SetEnabled(true)
	s.state = Visible
	s.UpdateGeometry(s.screenSize(s.comp))
	s.hideCursor()
	logger().Info("splash shown again")
}

// UpdateGeometry resizes the background to width×height, recenters the
// image and raises the subtree above surfaces created since. It does
// nothing unless the splash is Visible.
func (s *Session) UpdateGeometry(width, height int) {
	if s.state != Visible {
		return
	}
	if s.background != nil {
		s.background.SetSize(width, height)
	}
	s.center(width, height)
	if s.tree != nil {
		s.tree.RaiseToTop()
	}
}

// Hide disables the splash subtree and restores the default cursor. The
// nodes are kept so the splash can be shown again. It does nothing unless
// the splash is Visible.
func (s *Session) Hide() {
	if s.state != Visible {
		return
	}
	s.tree.SetEnabled(false)
	if c := s.cursor(); c != nil {
		c.ShowDefault()
	}
	s.state = Hidden
	logger().Info("splash hidden")
}

func (s *Session) center(width, height int) {
	if s.image == nil {
		return
	}
	s.image.SetPosition(
		framebuffer.CenterOffset(width, s.placedWidth),
		framebuffer.CenterOffset(height, s.placedHeight))
}

// screenSize returns the size of the first enabled output, or the
// fallback size when there is none.
func (s *Session) screenSize(comp Compositor) (int, int) {
	if out, ok := scene.FirstEnabled(comp.Outputs()); ok {
		return out.Width, out.Height
	}
	logger().Debug("no enabled output, using fallback size",
		"width", s.opts.fallbackWidth,
		"height", s.opts.fallbackHeight)
	return s.opts.fallbackWidth, s.opts.fallbackHeight
}

func (s *Session) cursor() scene.Cursor {
	if s.comp == nil {
		return nil
	}
	return s.comp.Cursor()
}

func (s *Session) hideCursor() {
	if c := s.cursor(); c != nil {
		c.Hide()
	}
}
