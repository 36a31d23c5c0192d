// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package framebuffer draws the splash directly onto a Linux fbdev device
// before any compositor is running.
//
// The device is mapped only for the duration of a single Show or Clear
// call; nothing holds the mapping between calls.
package framebuffer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/gogpu/bootsplash/internal/logging"
	"github.com/gogpu/bootsplash/internal/parallel"
	"github.com/gogpu/bootsplash/raster"
)

// Default device locations and resolution.
const (
	DefaultDevicePath = "/dev/fb0"
	DefaultSizePath   = "/sys/class/graphics/fb0/virtual_size"
	DefaultWidth      = 1280
	DefaultHeight     = 800
)

const bytesPerPixel = 4

// Renderer draws images onto a memory-mapped framebuffer device.
// The zero value uses the default paths, the file decoder and PlaceCenter.
type Renderer struct {
	// DevicePath is the framebuffer device, opened read-write.
	DevicePath string

	// SizePath holds the resolution as "W,H".
	SizePath string

	// FallbackWidth and FallbackHeight are used when SizePath is
	// unreadable or malformed.
	FallbackWidth  int
	FallbackHeight int

	// Decoder loads the image. Nil means raster.FileDecoder.
	Decoder raster.Decoder

	// Placement handles images larger than the screen.
	Placement raster.Placement
}

// New returns a Renderer for the default fbdev device.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) devicePath() string {
	if r.DevicePath == "" {
		return DefaultDevicePath
	}
	return r.DevicePath
}

func (r *Renderer) sizePath() string {
	if r.SizePath == "" {
		return DefaultSizePath
	}
	return r.SizePath
}

func (r *Renderer) fallback() (int, int) {
	w, h := r.FallbackWidth, r.FallbackHeight
	if w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

func (r *Renderer) decoder() raster.Decoder {
	if r.Decoder == nil {
		return raster.FileDecoder{}
	}
	return r.Decoder
}

func logger() *slog.Logger { return logging.Logger() }

// Resolution returns the framebuffer size read from SizePath, or the
// fallback size when it is unavailable.
func (r *Renderer) Resolution() (width, height int) {
	data, err := os.ReadFile(r.sizePath())
	if err == nil {
		if w, h, ok := ParseSize(data); ok {
			logger().Info("detected framebuffer resolution", "width", w, "height", h)
			return w, h
		}
	}
	w, h := r.fallback()
	logger().Info("using fallback framebuffer resolution", "width", w, "height", h)
	return w, h
}

// ParseSize parses a "W,H" line. Both values must be positive.
func ParseSize(data []byte) (width, height int, ok bool) {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	ws, hs, found := strings.Cut(strings.TrimSpace(string(line)), ",")
	if !found {
		return 0, 0, false
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, false
	}
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// Show decodes the image at path and draws it centered on a black screen.
// Errors leave the device untouched or partially cleared; callers treat
// them as "no preview shown".
func (r *Renderer) Show(path string) error {
	img, err := r.decoder().Decode(path)
	if err != nil {
		return fmt.Errorf("framebuffer: %w", err)
	}

	width, height := r.Resolution()
	img = r.Placement.Apply(img, width, height)

	err = r.withMapping(width, height, func(mem []byte) {
		clear(mem)
		Blit(mem, width, height, img)
	})
	if err != nil {
		return err
	}

	logger().Info("framebuffer splash displayed",
		"image_width", img.Width, "image_height", img.Height,
		"screen_width", width, "screen_height", height)
	return nil
}

// Clear fills the framebuffer with black.
func (r *Renderer) Clear() error {
	width, height := r.Resolution()
	return r.withMapping(width, height, func(mem []byte) { clear(mem) })
}

// withMapping maps width*height*4 bytes of the device, runs fn and unmaps.
func (r *Renderer) withMapping(width, height int, fn func(mem []byte)) error {
	path := r.devicePath()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("framebuffer: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	size := width * height * bytesPerPixel
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("framebuffer: mmap %s: %w", path, err)
	}

	fn(mem)

	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("framebuffer: munmap %s: %w", path, err)
	}
	return nil
}

// CenterOffset returns the offset that centers size within target. The
// result is negative when size exceeds target and truncates toward zero.
func CenterOffset(target, size int) int {
	return (target - size) / 2
}

// Blit copies img centered onto a width×height BGRA surface. Pixels that
// fall outside [0, width) × [0, height) are skipped. Tall images are
// copied in parallel row bands.
func Blit(dst []byte, width, height int, img *raster.Image) {
	offsetX := CenterOffset(width, img.Width)
	offsetY := CenterOffset(height, img.Height)

	parallel.Rows(img.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			fbY := offsetY + y
			if fbY < 0 || fbY >= height {
				continue
			}
			for x := range img.Width {
				fbX := offsetX + x
				if fbX < 0 || fbX >= width {
					continue
				}
				src := img.Pix[img.PixOffset(x, y):]
				i := (fbY*width + fbX) * bytesPerPixel
				raster.PutBGRA8(dst[i:i+bytesPerPixel], src[0], src[1], src[2], src[3])
			}
		}
	})
}
