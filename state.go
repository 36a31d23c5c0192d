// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bootsplash

// State is the lifecycle stage of a Session.
//
//	Created ─┬─> FramebufferOnly ─┬─> Visible <─> Hidden ─┬─> Destroyed
//	         └────────────────────┘                       │
//	any state ────────────────────────────────────────────┘
type State uint8

const (
	// Created means no preview could be drawn yet.
	Created State = iota

	// FramebufferOnly means the image is on the raw framebuffer and the
	// compositor has not taken over.
	FramebufferOnly

	// Visible means the splash subtree is enabled in the compositor scene.
	Visible

	// Hidden means the subtree exists but is disabled.
	Hidden

	// Destroyed is final. Every operation is a no-op.
	Destroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case FramebufferOnly:
		return "framebuffer-only"
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
