// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bootsplash shows a boot splash image across the handoff from the
// raw framebuffer to a Wayland-style compositor.
//
// # Overview
//
// A [Session] goes through three phases:
//
//  1. Before the compositor renders, [New] draws the image centered on the
//     Linux framebuffer device (/dev/fb0).
//  2. Once the compositor's scene graph exists, [Session.ShowInCompositor]
//     clears the framebuffer and builds a splash subtree: a black
//     full-screen rectangle with the centered image on top, raised above
//     every other surface, with the cursor hidden.
//  3. Any local process can hide the splash by writing HIDE_SPLASH to the
//     control socket (see package control and cmd/splashctl).
//
// # Quick Start
//
//	loop := eventloop.New()
//	s := bootsplash.New(loop, "/usr/share/splash/logo.png")
//	defer s.Destroy()
//
//	// After the compositor has created its scene graph:
//	s.ShowInCompositor(compositor)
//
//	// On every output layout change:
//	s.UpdateGeometry(width, height)
//
//	_ = loop.Run(ctx)
//
// # Threading
//
// A Session is not safe for concurrent use. Every method must run on the
// goroutine that dispatches the event loop. The control channel reads
// sockets on its own goroutines but only posts [Session.Hide] to the loop.
//
// # Image placement
//
// By default images larger than the screen are centered and clipped.
// [WithPlacement] with raster.PlaceFit scales them down instead, on both
// the framebuffer and the compositor path.
//
// # Logging
//
// Nothing is logged unless [SetLogger] is called.
package bootsplash
