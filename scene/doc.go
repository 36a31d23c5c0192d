// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene describes the compositor scene graph the splash draws into.
//
// The interfaces (Tree, Rect, Node, Cursor) are what a compositor must
// provide. Graph is a small in-memory implementation: a retained tree of
// rectangles and buffer nodes that can be composited into an *image.RGBA.
// Hosts without a real compositor, and tests, use it directly.
//
// # Coordinates
//
// Node positions are relative to their parent. Later siblings draw on top
// of earlier ones; RaiseToTop moves a node to the end of its parent's list.
//
// # Threading
//
// A Graph is not safe for concurrent use. Mutate and render it from the
// goroutine that runs the host's event loop.
package scene
