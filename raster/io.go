// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Decode errors.
var (
	// ErrEmptyPath is returned when no image path was configured.
	ErrEmptyPath = errors.New("raster: empty image path")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("raster: empty image")
)

// Decoder turns an image file into an RGBA8 raster.
type Decoder interface {
	Decode(path string) (*Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (*Image, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (*Image, error) { return f(path) }

// FileDecoder decodes any format registered with the image package:
// PNG, JPEG and GIF from the standard library, BMP, TIFF and WebP from
// golang.org/x/image.
type FileDecoder struct{}

// Decode opens path and decodes its contents.
func (FileDecoder) Decode(path string) (*Image, error) {
	return Load(path)
}

// Load decodes the image at path.
func Load(path string) (*Image, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("raster: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := Decode(f)
	if err != nil {
		return nil, err
	}
	logger().Info("loaded splash image", "path", path, "width", img.Width, "height", img.Height)
	return img, nil
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %w", err)
	}
	img, err := FromStdImage(src)
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", format, err)
	}
	return img, nil
}

// FromStdImage converts a standard library image to straight-alpha RGBA8.
// Palette, gray and 16-bit sources are expanded; the result never aliases
// src.
func FromStdImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	dst, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	// Fast path for NRGBA, which PNG produces for images with alpha.
	if n, ok := src.(*image.NRGBA); ok {
		for y := range dst.Height {
			srcStart := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride():(y+1)*dst.Stride()], n.Pix[srcStart:srcStart+dst.Stride()])
		}
		return dst, nil
	}

	draw.Draw(dst.NRGBA(), dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}
