// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// coverageGrid collects emit callbacks into a dense w x h float grid.
type coverageGrid struct {
	w, h int
	pix  []float32
}

func newCoverageGrid(w, h int) *coverageGrid {
	return &coverageGrid{w: w, h: h, pix: make([]float32, w*h)}
}

func (g *coverageGrid) emit(y, xMin int, coverage []float32) {
	for i, c := range coverage {
		g.pix[y*g.w+xMin+i] += c
	}
}

func (g *coverageGrid) at(x, y int) float32 {
	return g.pix[y*g.w+x]
}

func TestFillRectCoverage(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	r := NewRasterizer(clip)
	g := newCoverageGrid(10, 10)

	r.FillRect(rect.Rect{LLx: 2, LLy: 2, URx: 8, URy: 8}, g.emit)

	cases := []struct {
		x, y int
		want float32
	}{
		{5, 5, 1}, // interior
		{2, 2, 1}, // first pixel inside
		{7, 7, 1}, // last pixel inside
		{8, 5, 0}, // just past the right edge
		{1, 5, 0}, // just before the left edge
		{5, 8, 0}, // just past the bottom edge
	}
	for _, tc := range cases {
		if got := g.at(tc.x, tc.y); math.Abs(float64(got-tc.want)) > 1e-3 {
			t.Errorf("coverage(%d,%d) = %g, want %g", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFillRectFractionalEdge(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	r := NewRasterizer(clip)
	g := newCoverageGrid(10, 10)

	// Left edge at x=2.5: pixel column 2 is half covered.
	r.FillRect(rect.Rect{LLx: 2.5, LLy: 2, URx: 8, URy: 8}, g.emit)

	if got := g.at(2, 5); math.Abs(float64(got)-0.5) > 1e-3 {
		t.Errorf("coverage(2,5) = %g, want 0.5", got)
	}
	if got := g.at(5, 5); math.Abs(float64(got)-1) > 1e-3 {
		t.Errorf("coverage(5,5) = %g, want 1", got)
	}
}

func TestStrokeRectRing(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 40, URy: 30}
	r := NewRasterizer(clip)
	r.Width = 2
	g := newCoverageGrid(40, 30)

	// Outline band between (9,9)-(31,21) and (11,11)-(29,19).
	r.StrokeRect(rect.Rect{LLx: 10, LLy: 10, URx: 30, URy: 20}, g.emit)

	cases := []struct {
		x, y int
		want float32
	}{
		{10, 15, 1}, // left band
		{29, 15, 1}, // right band
		{20, 10, 1}, // top band
		{20, 19, 1}, // bottom band
		{20, 15, 0}, // interior hole
		{5, 5, 0},   // outside
	}
	for _, tc := range cases {
		if got := g.at(tc.x, tc.y); math.Abs(float64(got-tc.want)) > 1e-3 {
			t.Errorf("coverage(%d,%d) = %g, want %g", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestStrokeRectDashed(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 60, URy: 60}
	r := NewRasterizer(clip)
	r.Width = 2
	r.Dash = []float64{4, 4}
	g := newCoverageGrid(60, 60)

	// Perimeter walk starts at (10,10) going right: on for x in
	// [10,14], off to 18, on to 22, ...
	r.StrokeRect(rect.Rect{LLx: 10, LLy: 10, URx: 50, URy: 50}, g.emit)

	if got := g.at(11, 10); math.Abs(float64(got)-1) > 1e-3 {
		t.Errorf("coverage(11,10) = %g, want 1 (inside first dash)", got)
	}
	if got := g.at(15, 10); got > 1e-3 {
		t.Errorf("coverage(15,10) = %g, want 0 (inside first gap)", got)
	}
	if got := g.at(19, 10); math.Abs(float64(got)-1) > 1e-3 {
		t.Errorf("coverage(19,10) = %g, want 1 (inside second dash)", got)
	}
}

// TestStrokeRectMethodsAgree checks that the 2D-buffer and active-edge-list
// code paths produce the same coverage for the same outline.
func TestStrokeRectMethodsAgree(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 100}
	outline := rect.Rect{LLx: 12.5, LLy: 20, URx: 87.25, URy: 80}

	rA := NewRasterizer(clip)
	rA.Width = 3
	rA.smallPathThreshold = 1 << 30
	gA := newCoverageGrid(100, 100)
	rA.StrokeRect(outline, gA.emit)

	rB := NewRasterizer(clip)
	rB.Width = 3
	rB.smallPathThreshold = 0
	gB := newCoverageGrid(100, 100)
	rB.StrokeRect(outline, gB.emit)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			a, b := gA.at(x, y), gB.at(x, y)
			if math.Abs(float64(a-b)) > 1e-3 {
				t.Fatalf("methods disagree at (%d,%d): A=%g B=%g", x, y, a, b)
			}
		}
	}
}

func TestStrokeRectScaledCTM(t *testing.T) {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 50, URy: 50}
	r := NewRasterizer(clip)
	r.Width = 2
	r.CTM = matrix.Matrix{0.5, 0, 0, 0.5, 0, 0}
	g := newCoverageGrid(50, 50)

	// User-space rect (20,20)-(60,40) lands at device (10,10)-(30,20).
	r.StrokeRect(rect.Rect{LLx: 20, LLy: 20, URx: 60, URy: 40}, g.emit)

	// Device-space stroke width is 1, so the left band straddles x=10.
	if got := g.at(10, 15); got < 0.3 {
		t.Errorf("coverage(10,15) = %g, want > 0.3 (scaled left band)", got)
	}
	if got := g.at(20, 15); got > 1e-3 {
		t.Errorf("coverage(20,15) = %g, want 0 (scaled interior)", got)
	}
}
