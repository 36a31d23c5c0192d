// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "testing"

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    Placement
		wantErr bool
	}{
		{"", PlaceCenter, false},
		{"center", PlaceCenter, false},
		{" FIT ", PlaceFit, false},
		{"stretch", PlaceCenter, true},
	}
	for _, tt := range tests {
		got, err := ParsePlacement(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlacement(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePlacement(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{400, 300, 1280, 800, 400, 300},
		{2560, 1600, 1280, 800, 1280, 800},
		{2000, 500, 1000, 1000, 1000, 250},
		{100, 2000, 1280, 800, 40, 800},
		{10000, 1, 100, 100, 100, 1},
	}
	for _, tt := range tests {
		w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("FitSize(%d, %d, %d, %d) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestPlacement_Apply(t *testing.T) {
	big, _ := New(200, 100)
	for i := range big.Pix {
		big.Pix[i] = 0xFF
	}

	if got := PlaceCenter.Apply(big, 50, 50); got != big {
		t.Error("PlaceCenter.Apply should return the input unchanged")
	}

	fit := PlaceFit.Apply(big, 50, 50)
	if fit.Width != 50 || fit.Height != 25 {
		t.Fatalf("PlaceFit.Apply size = %dx%d, want 50x25", fit.Width, fit.Height)
	}
	if r, _, _, a := fit.RGBA(25, 12); r < 0xF0 || a < 0xF0 {
		t.Errorf("scaled pixel = r%d a%d, want near-opaque white", r, a)
	}

	small, _ := New(10, 10)
	if got := PlaceFit.Apply(small, 50, 50); got != small {
		t.Error("PlaceFit.Apply should not upscale")
	}
}

func TestPlacement_String(t *testing.T) {
	if PlaceCenter.String() != "center" || PlaceFit.String() != "fit" || Placement(9).String() != "unknown" {
		t.Error("unexpected Placement.String() values")
	}
}
