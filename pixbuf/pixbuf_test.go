// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixbuf

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/bootsplash/raster"
)

func TestBufferInterface(t *testing.T) {
	var _ Buffer = (*PixelBuffer)(nil)
}

func TestNew(t *testing.T) {
	b, err := New(400, 300)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data, format, stride, err := b.Lock()
	defer b.Unlock()
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if format != raster.FormatARGB8888 {
		t.Errorf("format = %v, want ARGB8888", format)
	}
	if stride != 1600 {
		t.Errorf("stride = %d, want 1600", stride)
	}
	if len(data) != 300*1600 {
		t.Errorf("len(data) = %d, want %d", len(data), 300*1600)
	}
	if b.Refs() != 1 {
		t.Errorf("Refs() = %d, want 1", b.Refs())
	}

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", size[0], size[1], err)
		}
	}
}

func TestFromRaster(t *testing.T) {
	img, _ := raster.New(2, 1)
	img.SetRGBA(1, 0, 0x10, 0x20, 0x30, 0x80)

	b, err := FromRaster(img)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Sealed() {
		t.Error("FromRaster buffer should be sealed")
	}
	data, _, _, _ := b.Lock()
	if got := binary.LittleEndian.Uint32(data[4:]); got != 0x80102030 {
		t.Errorf("pixel = %#x, want 0x80102030", got)
	}
	if _, err := b.Pix(); !errors.Is(err, ErrSealed) {
		t.Errorf("Pix() after seal error = %v, want ErrSealed", err)
	}
}

func TestPix_BeforeSeal(t *testing.T) {
	b, _ := New(1, 1)
	pix, err := b.Pix()
	if err != nil {
		t.Fatalf("Pix() error = %v", err)
	}
	pix[0] = 7
	data, _, _, _ := b.Lock()
	if data[0] != 7 {
		t.Error("Pix() and Lock() should share memory")
	}
}

func TestReleaseDestroysOnLastReference(t *testing.T) {
	b, _ := New(4, 4)
	destroyed := 0
	b.OnDestroy(func() { destroyed++ })

	node := b.Retain() // scene node reference
	b.Release()        // creator hands off
	if destroyed != 0 || b.Destroyed() {
		t.Fatal("buffer destroyed while the node still holds a reference")
	}

	node.Release()
	if destroyed != 1 || !b.Destroyed() {
		t.Fatalf("destroyed = %d, Destroyed() = %v, want 1, true", destroyed, b.Destroyed())
	}
	if _, _, _, err := b.Lock(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Lock() after destroy error = %v, want ErrDestroyed", err)
	}

	// Extra releases and retains never double-free or revive.
	node.Release()
	b.Retain()
	b.Release()
	if destroyed != 1 {
		t.Errorf("destroy hook ran %d times, want 1", destroyed)
	}
	if _, err := b.Pix(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Pix() after destroy error = %v, want ErrDestroyed", err)
	}
}
