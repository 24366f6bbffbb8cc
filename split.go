package scrollcore

// SplitFrame tiles f into viewport-sized sub-frames when it exceeds
// (viewW, viewH) along either axis, preserving reading order (row-major:
// top-to-bottom, then left-to-right within a row) and assigning each tile
// a 0-based Split index. If f already fits the viewport, it is returned
// unchanged (Split stays nil) as the sole element.
//
// Tile sizes are computed with integer division, so the last row/column
// may undercover the original rect by a pixel or two; this is accepted; a
// later ScrollCursor never relies on exact tile coverage.
func SplitFrame(f Frame, viewW, viewH int) []Frame {
	if f.Rect.W <= viewW && f.Rect.H <= viewH {
		return []Frame{f}
	}

	nRows, splitH := 1, f.Rect.H
	if f.Rect.H > viewH {
		nRows = ceilDiv(f.Rect.H, viewH)
		splitH = f.Rect.H / nRows
	}
	nCols, splitW := 1, f.Rect.W
	if f.Rect.W > viewW {
		nCols = ceilDiv(f.Rect.W, viewW)
		splitW = f.Rect.W / nCols
	}

	tiles := make([]Frame, 0, nRows*nCols)
	y := f.Rect.Y
	for r := 0; r < nRows; r++ {
		x := f.Rect.X
		for c := 0; c < nCols; c++ {
			idx := uint32(len(tiles))
			tiles = append(tiles, Frame{
				Rect:   Rect{X: x, Y: y, W: splitW, H: splitH},
				Number: f.Number,
				Split:  &idx,
			})
			x += splitW
		}
		y += splitH
	}
	return tiles
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
