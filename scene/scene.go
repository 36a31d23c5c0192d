// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"image/color"

	"github.com/gogpu/bootsplash/pixbuf"
)

// Errors returned when creating nodes.
var (
	// ErrDestroyed is returned when creating a child under a destroyed tree.
	ErrDestroyed = errors.New("scene: parent destroyed")

	// ErrNilBuffer is returned by NewBuffer for a nil buffer.
	ErrNilBuffer = errors.New("scene: nil buffer")
)

// Node is a positioned element of a scene graph. Positions are relative to
// the parent tree.
type Node interface {
	SetPosition(x, y int)
	SetEnabled(enabled bool)

	// RaiseToTop moves the node above all of its siblings.
	RaiseToTop()

	// Destroy removes the node from its parent and destroys its
	// children. Buffers held by destroyed nodes are released.
	Destroy()
}

// Tree is a node that contains other nodes.
type Tree interface {
	Node

	// NewTree creates an empty child tree.
	NewTree() (Tree, error)

	// NewRect creates a solid color rectangle.
	NewRect(width, height int, c color.Color) (Rect, error)

	// NewBuffer creates a node displaying buf. The node retains buf and
	// releases it when destroyed; the caller keeps its own reference and
	// normally releases it right away.
	NewBuffer(buf pixbuf.Buffer) (Node, error)
}

// Rect is a solid color rectangle node.
type Rect interface {
	Node
	SetSize(width, height int)
}

// Output is a display connected to the compositor.
type Output struct {
	Name    string
	Enabled bool
	Width   int
	Height  int
}

// FirstEnabled returns the first enabled output in outputs.
func FirstEnabled(outputs []Output) (Output, bool) {
	for _, o := range outputs {
		if o.Enabled {
			return o, true
		}
	}
	return Output{}, false
}

// Cursor controls the pointer image drawn by the compositor.
type Cursor interface {
	// Hide removes the cursor image.
	Hide()

	// ShowDefault restores the default cursor image.
	ShowDefault()
}
