// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pixbuf provides the CPU pixel buffer handed to the compositor.
//
// A PixelBuffer starts with one reference owned by its creator. Handing it
// to a scene node transfers ownership: the node retains it and the creator
// releases its own reference, so the buffer is destroyed together with the
// node. Pixels are frozen by Seal before the first handoff.
//
// Buffers are not safe for concurrent use; like the scene graph they belong
// to the host's event loop goroutine.
package pixbuf

import (
	"errors"

	"github.com/gogpu/bootsplash/raster"
)

// Errors returned by buffer operations.
var (
	// ErrDestroyed is returned when locking a buffer whose last reference
	// has been released.
	ErrDestroyed = errors.New("pixbuf: buffer destroyed")

	// ErrSealed is returned when requesting write access to a sealed buffer.
	ErrSealed = errors.New("pixbuf: buffer sealed")

	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")
)

// Format is the pixel format of every PixelBuffer.
const Format = raster.FormatARGB8888

// Buffer is the capability a compositor needs to sample client pixels.
type Buffer interface {
	// Size returns the buffer dimensions in pixels.
	Size() (width, height int)

	// Lock grants read access to the pixel memory. The returned slice is
	// valid until Unlock.
	Lock() (data []byte, format raster.Format, stride int, err error)

	// Unlock ends the access started by Lock.
	Unlock()

	// Retain adds a reference and returns the buffer.
	Retain() Buffer

	// Release drops a reference. The last release destroys the buffer.
	Release()
}

// PixelBuffer owns height*(width*4) bytes of ARGB8888 pixels.
type PixelBuffer struct {
	width  int
	height int
	stride int
	data   []byte

	refs      int
	sealed    bool
	onDestroy func()
}

// New allocates a zeroed buffer holding one reference.
func New(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	stride := Format.RowBytes(width)
	return &PixelBuffer{
		width:  width,
		height: height,
		stride: stride,
		data:   make([]byte, stride*height),
		refs:   1,
	}, nil
}

// FromRaster packs img into a new sealed buffer.
func FromRaster(img *raster.Image) (*PixelBuffer, error) {
	b, err := New(img.Width, img.Height)
	if err != nil {
		return nil, err
	}
	img.ToARGB8888(b.data, b.stride)
	b.Seal()
	return b, nil
}

// Pix returns the writable pixel memory. It fails once the buffer is
// sealed or destroyed.
func (b *PixelBuffer) Pix() ([]byte, error) {
	if b.data == nil {
		return nil, ErrDestroyed
	}
	if b.sealed {
		return nil, ErrSealed
	}
	return b.data, nil
}

// Seal makes the pixels immutable. Sealing twice is harmless.
func (b *PixelBuffer) Seal() { b.sealed = true }

// Sealed reports whether the buffer is sealed.
func (b *PixelBuffer) Sealed() bool { return b.sealed }

// Size implements Buffer.
func (b *PixelBuffer) Size() (int, int) { return b.width, b.height }

// Stride returns the number of bytes per row.
func (b *PixelBuffer) Stride() int { return b.stride }

// Lock implements Buffer. The memory is always resident, so Lock only
// fails after destruction.
func (b *PixelBuffer) Lock() ([]byte, raster.Format, int, error) {
	if b.data == nil {
		return nil, Format, 0, ErrDestroyed
	}
	return b.data, Format, b.stride, nil
}

// Unlock implements Buffer. It is a no-op.
func (b *PixelBuffer) Unlock() {}

// Retain implements Buffer. Retaining a destroyed buffer does not revive it.
func (b *PixelBuffer) Retain() Buffer {
	if b.data != nil {
		b.refs++
	}
	return b
}

// Release implements Buffer. Releases beyond the last reference are ignored.
func (b *PixelBuffer) Release() {
	if b.refs == 0 {
		return
	}
	b.refs--
	if b.refs == 0 {
		b.destroy()
	}
}

// Refs returns the number of live references.
func (b *PixelBuffer) Refs() int { return b.refs }

// Destroyed reports whether the last reference has been released.
func (b *PixelBuffer) Destroyed() bool { return b.data == nil && b.refs == 0 }

// OnDestroy registers fn to run when the buffer is destroyed.
func (b *PixelBuffer) OnDestroy(fn func()) { b.onDestroy = fn }

func (b *PixelBuffer) destroy() {
	b.data = nil
	logger().Debug("pixel buffer destroyed", "width", b.width, "height", b.height)
	if fn := b.onDestroy; fn != nil {
		b.onDestroy = nil
		fn()
	}
}
