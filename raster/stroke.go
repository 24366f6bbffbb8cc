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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Panel outlines are axis-aligned rectangles, which lets the stroke
// geometry stay much simpler than a general path stroker: a solid outline
// is the ring between an outer and an inner rectangle (the inner one wound
// in the opposite direction so the nonzero fill leaves a hole), and a
// dashed outline is a sequence of thin rectangles along the perimeter.
// Only the corner and cap treatment needs real geometry, and even there
// every corner is a right angle.

// StrokeRect strokes the outline of rc using Width, Join, Dash, DashPhase,
// and (for dash segment ends) Cap. The rectangle is in user space; CTM
// applies as usual. The emit callback receives coverage row-by-row; its
// slice argument is valid only during the call.
//
// A dash that would bend around a corner is split at the corner instead;
// for outline preview purposes the difference is invisible.
func (r *Rasterizer) StrokeRect(rc rect.Rect, emit func(y, xMin int, coverage []float32)) {
	if rc.URx <= rc.LLx && rc.URy <= rc.LLy {
		return
	}

	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	if len(r.Dash) > 0 {
		r.dashRectOutline(rc)
	} else {
		r.solidRectOutline(rc)
	}

	r.fillPolygons(emit)
}

// FillRect fills the interior of rc, e.g. for a translucent highlight of
// the row a scroll cursor currently shows. The emit callback receives
// coverage row-by-row; its slice argument is valid only during the call.
func (r *Rasterizer) FillRect(rc rect.Rect, emit func(y, xMin int, coverage []float32)) {
	if rc.URx <= rc.LLx || rc.URy <= rc.LLy {
		return
	}

	r.stroke = r.stroke[:0]
	r.strokeOffsets = append(r.strokeOffsets[:0], 0)
	r.stroke = append(r.stroke,
		vec.Vec2{X: rc.LLx, Y: rc.LLy},
		vec.Vec2{X: rc.URx, Y: rc.LLy},
		vec.Vec2{X: rc.URx, Y: rc.URy},
		vec.Vec2{X: rc.LLx, Y: rc.URy},
	)

	r.fillPolygons(emit)
}

// solidRectOutline builds the outline ring for rc: an outer rectangle
// (with Join-styled corners) and, when the stroke is narrower than the
// rectangle, an inner rectangle wound the opposite way.
func (r *Rasterizer) solidRectOutline(rc rect.Rect) {
	d := r.Width / 2
	x0, y0, x1, y1 := rc.LLx, rc.LLy, rc.URx, rc.URy

	// Outer boundary, walked min-corner → +x → +y → -x, so that the
	// reversed inner rectangle cancels it under the nonzero rule.
	r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
	switch r.Join {
	case graphics.LineJoinRound:
		r.stroke = append(r.stroke, vec.Vec2{X: x0, Y: y0 - d}, vec.Vec2{X: x1, Y: y0 - d})
		r.addArc(vec.Vec2{X: x1, Y: y0}, d, -math.Pi/2, math.Pi/2)
		r.stroke = append(r.stroke, vec.Vec2{X: x1 + d, Y: y1})
		r.addArc(vec.Vec2{X: x1, Y: y1}, d, 0, math.Pi/2)
		r.stroke = append(r.stroke, vec.Vec2{X: x0, Y: y1 + d})
		r.addArc(vec.Vec2{X: x0, Y: y1}, d, math.Pi/2, math.Pi/2)
		r.stroke = append(r.stroke, vec.Vec2{X: x0 - d, Y: y0})
		r.addArc(vec.Vec2{X: x0, Y: y0}, d, math.Pi, math.Pi/2)
	case graphics.LineJoinBevel:
		r.stroke = append(r.stroke,
			vec.Vec2{X: x0, Y: y0 - d}, vec.Vec2{X: x1, Y: y0 - d},
			vec.Vec2{X: x1 + d, Y: y0}, vec.Vec2{X: x1 + d, Y: y1},
			vec.Vec2{X: x1, Y: y1 + d}, vec.Vec2{X: x0, Y: y1 + d},
			vec.Vec2{X: x0 - d, Y: y1}, vec.Vec2{X: x0 - d, Y: y0},
		)
	default: // miter: a right-angle miter is just the sharp corner
		r.stroke = append(r.stroke,
			vec.Vec2{X: x0 - d, Y: y0 - d}, vec.Vec2{X: x1 + d, Y: y0 - d},
			vec.Vec2{X: x1 + d, Y: y1 + d}, vec.Vec2{X: x0 - d, Y: y1 + d},
		)
	}

	// Inner boundary, reversed. Omitted when the stroke swallows the
	// whole interior, leaving a filled rectangle.
	if x1-d > x0+d && y1-d > y0+d {
		r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
		r.stroke = append(r.stroke,
			vec.Vec2{X: x0 + d, Y: y0 + d}, vec.Vec2{X: x0 + d, Y: y1 - d},
			vec.Vec2{X: x1 - d, Y: y1 - d}, vec.Vec2{X: x1 - d, Y: y0 + d},
		)
	}
}

// dashRectOutline walks the perimeter of rc, splitting it into on/off runs
// per the dash pattern, and builds one thin rectangle per "on" run.
func (r *Rasterizer) dashRectOutline(rc rect.Rect) {
	dash := r.Dash
	dashLen := len(dash)

	// Total pattern length, doubled for odd-length patterns per the PDF
	// convention ("1 0" behaves as "1 0 1 0").
	patternLen := 0.0
	for _, d := range dash {
		patternLen += d
	}
	if dashLen%2 == 1 {
		patternLen *= 2
	}
	if patternLen <= 0 {
		r.solidRectOutline(rc)
		return
	}

	// Normalize phase to [0, patternLen) and find the starting element.
	phase := math.Mod(r.DashPhase, patternLen)
	if phase < 0 {
		phase += patternLen
	}
	dashIdx := 0
	for phase >= dash[dashIdx%dashLen] && dash[dashIdx%dashLen] > 0 {
		phase -= dash[dashIdx%dashLen]
		dashIdx++
	}
	remaining := dash[dashIdx%dashLen] - phase

	w := rc.URx - rc.LLx
	h := rc.URy - rc.LLy
	sides := [4]struct {
		start  vec.Vec2
		t      vec.Vec2
		length float64
	}{
		{vec.Vec2{X: rc.LLx, Y: rc.LLy}, vec.Vec2{X: 1, Y: 0}, w},
		{vec.Vec2{X: rc.URx, Y: rc.LLy}, vec.Vec2{X: 0, Y: 1}, h},
		{vec.Vec2{X: rc.URx, Y: rc.URy}, vec.Vec2{X: -1, Y: 0}, w},
		{vec.Vec2{X: rc.LLx, Y: rc.URy}, vec.Vec2{X: 0, Y: -1}, h},
	}

	for _, side := range sides {
		pos := 0.0
		for pos < side.length {
			// Skip exhausted (or zero-length) dash elements.
			for remaining <= 0 {
				dashIdx++
				remaining = dash[dashIdx%dashLen]
			}
			run := min(remaining, side.length-pos)
			if dashIdx%2 == 0 && run > 0 {
				a := side.start.Add(side.t.Mul(pos))
				b := side.start.Add(side.t.Mul(pos + run))
				r.addDashSegment(a, b, side.t)
			}
			pos += run
			remaining -= run
		}
	}
}

// addDashSegment builds the polygon for one "on" dash run from a to b,
// with t the unit tangent of the side being walked. Cap controls the
// segment ends; every polygon is wound the same way so overlapping dashes
// at corners do not cancel under the nonzero rule.
func (r *Rasterizer) addDashSegment(a, b, t vec.Vec2) {
	d := r.Width / 2
	n := vec.Vec2{X: -t.Y, Y: t.X}

	if r.Cap == graphics.LineCapSquare {
		a = a.Sub(t.Mul(d))
		b = b.Add(t.Mul(d))
	}

	r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
	if r.Cap == graphics.LineCapRound {
		nAngle := math.Atan2(n.Y, n.X)
		r.stroke = append(r.stroke, a.Add(n.Mul(d)), b.Add(n.Mul(d)))
		r.addArc(b, d, nAngle, -math.Pi)
		r.stroke = append(r.stroke, b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
		r.addArc(a, d, nAngle+math.Pi, -math.Pi)
	} else {
		r.stroke = append(r.stroke,
			a.Add(n.Mul(d)), b.Add(n.Mul(d)),
			b.Sub(n.Mul(d)), a.Sub(n.Mul(d)),
		)
	}
}

// addArc appends vertices approximating a circular arc to the polygon in
// progress. The arc is centered at center with the given radius, starting
// at startAngle (radians, standard orientation) and sweeping by sweep
// (positive or negative). Both endpoints are included; a duplicate of the
// previous polygon vertex is harmless, since zero-length edges are
// dropped during edge collection.
func (r *Rasterizer) addArc(center vec.Vec2, radius, startAngle, sweep float64) {
	// Segment count from the flatness tolerance, using the device-space
	// radius: for a chord subtending angle θ the sagitta is
	// radius*(1 - cos(θ/2)), so θ = 2*acos(1 - ε/radius).
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius, Y: 0}).Length(),
		r.transformLinear(vec.Vec2{X: 0, Y: radius}).Length(),
	)
	n := 1
	if devRadius > r.Flatness {
		angleStep := 2 * math.Acos(1-r.Flatness/devRadius)
		if angleStep > 0 && !math.IsNaN(angleStep) {
			n = max(1, int(math.Ceil(math.Abs(sweep)/angleStep)))
		}
	}

	dt := sweep / float64(n)
	for i := 0; i <= n; i++ {
		angle := startAngle + float64(i)*dt
		r.stroke = append(r.stroke, vec.Vec2{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
}
