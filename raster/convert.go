// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"encoding/binary"

	"github.com/gogpu/bootsplash/internal/parallel"
)

// PackARGB8888 packs straight-alpha channels into one ARGB8888 word.
func PackARGB8888(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackARGB8888 splits an ARGB8888 word into its channels.
func UnpackARGB8888(v uint32) (r, g, b, a uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v), uint8(v >> 24)
}

// ToARGB8888 writes m as packed little-endian ARGB8888 words into dst, one
// row every stride bytes. dst must hold at least stride*(Height-1) +
// 4*Width bytes. Large images are converted in parallel row bands.
func (m *Image) ToARGB8888(dst []byte, stride int) {
	parallel.Rows(m.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src := m.Pix[y*m.Stride() : (y+1)*m.Stride()]
			row := dst[y*stride:]
			for x := range m.Width {
				s := src[x*4 : x*4+4]
				binary.LittleEndian.PutUint32(row[x*4:], PackARGB8888(s[0], s[1], s[2], s[3]))
			}
		}
	})
}

// PutBGRA8 stores one RGBA pixel into dst in B, G, R, A byte order.
func PutBGRA8(dst []byte, r, g, b, a uint8) {
	dst[0] = b
	dst[1] = g
	dst[2] = r
	dst[3] = a
}
