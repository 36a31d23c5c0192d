// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel splits row-oriented pixel work across goroutines.
//
// Work is cut into horizontal bands of at least MinRowsPerBand rows. Each
// band runs on its own goroutine and Rows returns once every band is done,
// so callers see ordinary synchronous behavior. Bands never overlap; a
// callback may write its rows of a shared buffer without locking.
package parallel

import (
	"runtime"
	"sync"
)

// MinRowsPerBand is the smallest band handed to a goroutine. Images with
// fewer rows than two bands are processed on the calling goroutine.
const MinRowsPerBand = 64

// Rows calls fn for disjoint [y0, y1) bands covering [0, height) using up
// to GOMAXPROCS goroutines, and waits for all of them.
func Rows(height int, fn func(y0, y1 int)) {
	RowsN(height, runtime.GOMAXPROCS(0), fn)
}

// RowsN is Rows with an explicit upper bound on the number of bands.
func RowsN(height, workers int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	bands := min(workers, height/MinRowsPerBand)
	if bands <= 1 {
		fn(0, height)
		return
	}

	step := (height + bands - 1) / bands
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += step {
		y1 := min(y0+step, height)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}
