// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestRowsN_CoversEveryRowOnce(t *testing.T) {
	tests := []struct {
		height, workers int
	}{
		{1, 8},
		{63, 8},
		{128, 8},
		{129, 2},
		{800, 4},
		{1080, 16},
		{2160, 3},
		{1000, 1},
	}
	for _, tt := range tests {
		seen := make([]int32, tt.height)
		RowsN(tt.height, tt.workers, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				atomic.AddInt32(&seen[y], 1)
			}
		})
		for y, n := range seen {
			if n != 1 {
				t.Fatalf("height %d workers %d: row %d visited %d times", tt.height, tt.workers, y, n)
			}
		}
	}
}

func TestRowsN_BandCount(t *testing.T) {
	tests := []struct {
		height, workers, maxBands int
	}{
		{100, 8, 1},    // fewer rows than two bands
		{128, 8, 2},    // two minimum bands
		{1080, 4, 4},   // bounded by workers
		{1080, 64, 16}, // bounded by band size
	}
	for _, tt := range tests {
		var mu sync.Mutex
		bands := 0
		RowsN(tt.height, tt.workers, func(y0, y1 int) {
			if y1 <= y0 {
				t.Errorf("empty band [%d, %d)", y0, y1)
			}
			mu.Lock()
			bands++
			mu.Unlock()
		})
		if bands < 1 || bands > tt.maxBands {
			t.Errorf("height %d workers %d: %d bands, want 1..%d", tt.height, tt.workers, bands, tt.maxBands)
		}
	}
}

func TestRows_EmptyHeight(t *testing.T) {
	called := false
	Rows(0, func(int, int) { called = true })
	Rows(-3, func(int, int) { called = true })
	if called {
		t.Error("fn called for a non-positive height")
	}
}
