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

// Package overlay draws panel and viewport rectangles onto page images,
// for preview tooling and debugging segmentation output. It has no opinion
// on where frames come from; it only renders the rectangles it is given,
// using the raster package for coverage rasterization.
package overlay

import (
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"github.com/mcomix-go/scrollcore"
	"github.com/mcomix-go/scrollcore/raster"
)

// Style controls how a single rectangle is stroked.
type Style struct {
	Color color.RGBA
	Width float64 // stroke width in pixels; defaults to 1 if <= 0
	Dash  []float64
}

// DefaultFrameStyle outlines an ordinary panel: a thin solid cyan line.
var DefaultFrameStyle = Style{Color: color.RGBA{0, 200, 200, 255}, Width: 2}

// DefaultCurrentRowStyle highlights the row the ScrollCursor currently
// shows: a thicker dashed magenta line, so it stands out against the
// panel grid drawn with DefaultFrameStyle.
var DefaultCurrentRowStyle = Style{Color: color.RGBA{220, 0, 180, 255}, Width: 3, Dash: []float64{6, 4}}

// DefaultRowFillColor is the translucent wash used by FillRect to shade
// the current row's interior.
var DefaultRowFillColor = color.RGBA{220, 0, 180, 64}

// Renderer draws rectangle overlays onto a destination image. Create one
// per output image size and reuse it across calls, like the underlying
// Rasterizer it wraps.
type Renderer struct {
	r    *raster.Rasterizer
	w, h int
}

// NewRenderer returns a Renderer clipped to a width x height canvas.
func NewRenderer(width, height int) *Renderer {
	clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(width), URy: float64(height)}
	r := raster.NewRasterizer(clip)
	r.Flatness = 0.3
	return &Renderer{r: r, w: width, h: height}
}

// SetScale makes subsequent draws map full-resolution page coordinates
// onto a canvas downscaled by the given factor, so frames detected on the
// original page can be drawn directly onto a preview image.
func (o *Renderer) SetScale(scale float64) {
	o.r.CTM = matrix.Matrix{scale, 0, 0, scale, 0, 0}
}

// DrawRect strokes the outline of rc onto dst using style.
func (o *Renderer) DrawRect(dst draw.Image, rc scrollcore.Rect, style Style) {
	o.r.Width = style.Width
	if o.r.Width <= 0 {
		o.r.Width = 1
	}
	o.r.Cap = graphics.LineCapButt
	o.r.Join = graphics.LineJoinMiter
	o.r.Dash = style.Dash
	o.r.DashPhase = 0

	o.r.StrokeRect(deviceRect(rc), o.blender(dst, style.Color))
}

// FillRect shades the interior of rc onto dst, e.g. to wash the row the
// scroll cursor currently shows. c's alpha controls the wash strength.
func (o *Renderer) FillRect(dst draw.Image, rc scrollcore.Rect, c color.RGBA) {
	o.r.FillRect(deviceRect(rc), o.blender(dst, c))
}

// DrawFrames strokes every frame's rectangle with style.
func (o *Renderer) DrawFrames(dst draw.Image, frames []scrollcore.Frame, style Style) {
	for _, f := range frames {
		o.DrawRect(dst, f.Rect, style)
	}
}

// DrawRow highlights one row bounding box: a translucent interior wash
// plus a stroked outline.
func (o *Renderer) DrawRow(dst draw.Image, bbox scrollcore.Rect, style Style) {
	fill := style.Color
	fill.A /= 4
	o.FillRect(dst, bbox, fill)
	o.DrawRect(dst, bbox, style)
}

// deviceRect converts a pixel rectangle into the rasterizer's geometry
// type, with the origin at the top-left corner (matching image.Image
// convention).
func deviceRect(rc scrollcore.Rect) rect.Rect {
	return rect.Rect{
		LLx: float64(rc.X), LLy: float64(rc.Y),
		URx: float64(rc.X + rc.W), URy: float64(rc.Y + rc.H),
	}
}

// blender returns an emit callback that alpha-blends c, scaled by
// coverage, over dst.
func (o *Renderer) blender(dst draw.Image, c color.RGBA) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		if y < 0 || y >= o.h {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < 0 || x >= o.w || cov <= 0 {
				continue
			}
			blendOver(dst, x, y, c, cov)
		}
	}
}

// blendOver alpha-blends c, scaled by coverage, over the pixel at (x, y).
func blendOver(dst draw.Image, x, y int, c color.RGBA, coverage float32) {
	a := float64(c.A) / 255 * float64(coverage)
	if a <= 0 {
		return
	}
	if a >= 1 {
		dst.Set(x, y, c)
		return
	}
	bg := dst.At(x, y)
	br, bg_, bb, ba := bg.RGBA()
	nr := uint8((float64(c.R)*a + float64(br>>8)*(1-a)))
	ng := uint8((float64(c.G)*a + float64(bg_>>8)*(1-a)))
	nb := uint8((float64(c.B)*a + float64(bb>>8)*(1-a)))
	na := uint8(max(float64(ba>>8), float64(c.A)*a))
	dst.Set(x, y, color.RGBA{R: nr, G: ng, B: nb, A: na})
}
