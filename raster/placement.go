// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"strings"

	"golang.org/x/image/draw"
)

// Placement decides what happens to an image larger than its target.
// Both the framebuffer and the compositor path apply the same policy.
type Placement uint8

const (
	// PlaceCenter centers the image at its native size. Parts outside the
	// target are not drawn.
	PlaceCenter Placement = iota

	// PlaceFit downscales an oversized image, preserving aspect ratio,
	// until it fits the target. Smaller images are left untouched.
	PlaceFit
)

// String returns the configuration name of the placement.
func (p Placement) String() string {
	switch p {
	case PlaceCenter:
		return "center"
	case PlaceFit:
		return "fit"
	default:
		return "unknown"
	}
}

// ParsePlacement parses "center" or "fit" (case-insensitive). The empty
// string selects PlaceCenter.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center":
		return PlaceCenter, nil
	case "fit":
		return PlaceFit, nil
	default:
		return PlaceCenter, fmt.Errorf("raster: unknown placement %q", s)
	}
}

// Apply returns the image to place on a width×height target. For
// PlaceCenter, and for images that already fit, it returns m itself.
func (p Placement) Apply(m *Image, width, height int) *Image {
	if p != PlaceFit || width <= 0 || height <= 0 {
		return m
	}
	if m.Width <= width && m.Height <= height {
		return m
	}
	w, h := FitSize(m.Width, m.Height, width, height)
	dst, err := New(w, h)
	if err != nil {
		return m
	}
	draw.CatmullRom.Scale(dst.NRGBA(), dst.Bounds(), m.NRGBA(), m.Bounds(), draw.Src, nil)
	return dst
}

// FitSize scales (w, h) down to fit within (maxW, maxH), preserving aspect
// ratio. Neither result is ever below 1.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	// Compare w/maxW against h/maxH without floating point.
	if w*maxH >= h*maxW {
		nh := h * maxW / w
		return maxW, max(nh, 1)
	}
	nw := w * maxH / h
	return max(nw, 1), maxH
}
