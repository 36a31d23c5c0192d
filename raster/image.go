// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"image"
	"image/color"
)

// ErrInvalidDimensions is returned when width or height is non-positive.
var ErrInvalidDimensions = errors.New("raster: invalid dimensions")

// Image is a decoded raster: top-to-bottom rows of straight-alpha RGBA8
// pixels with no row padding.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (transparent black) image.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, FormatRGBA8.ImageBytes(width, height)),
	}, nil
}

// Stride returns the number of bytes per row.
func (m *Image) Stride() int {
	return FormatRGBA8.RowBytes(m.Width)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride() + x*4
}

// RGBA returns the channels of pixel (x, y). Out-of-range coordinates
// return zeros.
func (m *Image) RGBA(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0, 0, 0, 0
	}
	i := m.PixOffset(x, y)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

// SetRGBA sets pixel (x, y). Out-of-range coordinates are ignored.
func (m *Image) SetRGBA(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	i := m.PixOffset(x, y)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = r, g, b, a
}

// NRGBA returns a standard library view sharing the same pixels.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Stride(),
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	r, g, b, a := m.RGBA(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}
