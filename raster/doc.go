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

// Package raster turns panel outlines into per-pixel coverage values.
//
// It fills and strokes axis-aligned rectangles — the only shape comic
// panel segmentation produces — with anti-aliased coverage, supporting
// dashed outlines, the usual corner and cap styles, and an optional
// scale transform for drawing onto downscaled preview images. The overlay
// package builds on it to composite outlines onto page images; this
// package itself knows nothing about frames or comic pages, only
// rectangles and coverage.
package raster
