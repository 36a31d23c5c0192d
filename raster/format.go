// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Format represents a 32-bit pixel storage format.
type Format uint8

const (
	// FormatRGBA8 is byte-ordered R, G, B, A with straight alpha.
	// Decoders always produce this format.
	FormatRGBA8 Format = iota

	// FormatBGRA8 is byte-ordered B, G, R, A. Linux framebuffer devices
	// running at 32 bpp expect this layout.
	FormatBGRA8

	// FormatARGB8888 is a packed uint32 a<<24 | r<<16 | g<<8 | b stored
	// little-endian (DRM_FORMAT_ARGB8888). Compositor buffers use it.
	FormatARGB8888

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// Packed indicates the pixel is addressed as one native-endian word
	// rather than as a byte sequence.
	Packed bool

	// Fourcc is the DRM fourcc code, or 0 if the format has none.
	Fourcc uint32
}

func fourcc(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA8: {
		BytesPerPixel: 4,
		HasAlpha:      true,
		Fourcc:        fourcc('A', 'B', '2', '4'),
	},
	FormatBGRA8: {
		BytesPerPixel: 4,
		HasAlpha:      true,
		Fourcc:        fourcc('A', 'R', '2', '4'),
	},
	FormatARGB8888: {
		BytesPerPixel: 4,
		HasAlpha:      true,
		Packed:        true,
		Fourcc:        fourcc('A', 'R', '2', '4'),
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Fourcc returns the DRM fourcc code of the format.
func (f Format) Fourcc() uint32 {
	return f.Info().Fourcc
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes in a tightly packed row.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes returns the number of bytes for a tightly packed image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	case FormatARGB8888:
		return "ARGB8888"
	default:
		return "Unknown"
	}
}
