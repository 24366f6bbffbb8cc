package scrollcore

// PanelFinder recursively cuts a page rectangle on background gutters into
// an ordered list of panel rectangles. Create one per page; it holds no
// state beyond the mask and page dimensions it was built with.
type PanelFinder struct {
	mask                 *ImageMask
	imageW, imageH       int
	minFrameW, minFrameH int
}

// NewPanelFinder builds a PanelFinder for the given mask. The minimum
// frame size along each axis is max(64, dimension/16), per the fixed
// formula in the design.
func NewPanelFinder(mask *ImageMask) *PanelFinder {
	return &PanelFinder{
		mask:      mask,
		imageW:    mask.W,
		imageH:    mask.H,
		minFrameW: max(64, mask.W/16),
		minFrameH: max(64, mask.H/16),
	}
}

// FindFrames segments the full page into an ordered list of panel
// rectangles. It never returns an empty list: a page that cannot be
// usefully split, or whose content crops away entirely, yields a single
// frame covering the whole page.
func (pf *PanelFinder) FindFrames() []Rect {
	full := Rect{X: 0, Y: 0, W: pf.imageW, H: pf.imageH}
	if frames, ok := pf.findFramesRec(full, true, true); ok {
		return frames
	}
	return []Rect{full}
}

// crop shrinks rect by the leading run of background lines on each side,
// in the fixed order top, bottom, left, right. It reports false if the
// rect collapses to zero area on any side.
func (pf *PanelFinder) crop(rect Rect) (Rect, bool) {
	for _, side := range [4]byte{'t', 'b', 'l', 'r'} {
		rect = pf.cropSide(rect, side)
		if rect.W <= 0 || rect.H <= 0 {
			return Rect{}, false
		}
	}
	return rect, true
}

func (pf *PanelFinder) cropSide(rect Rect, side byte) Rect {
	x0, y0, x1, y1 := rect.X0(), rect.Y0(), rect.X1(), rect.Y1()
	w := pf.imageW
	switch side {
	case 't':
		pos := x0 + y0*w
		y0 += CountLines(pf.mask, maxImperfectionSize, true, pos, 1, rect.W, w, rect.H)
	case 'b':
		pos := x0 + y1*w
		y1 -= CountLines(pf.mask, maxImperfectionSize, true, pos, 1, rect.W, -w, rect.H)
	case 'l':
		pos := y0*w + x0
		x0 += CountLines(pf.mask, maxImperfectionSize, true, pos, w, rect.H, 1, rect.W)
	case 'r':
		pos := y0*w + x1
		x1 -= CountLines(pf.mask, maxImperfectionSize, true, pos, w, rect.H, -1, rect.W)
	}
	return rectFromPoints(x0, y0, x1, y1)
}

// findFramesRec is the recursive core: crop, check minimum size, then try
// a horizontal cut (if allowed) and a vertical cut (if allowed), in that
// order. Cuts alternate axes — the first half of a successful split is
// only probed for the perpendicular axis, which both prevents duplicate
// detection and keeps reading order (top-then-bottom, left-then-right).
func (pf *PanelFinder) findFramesRec(rect Rect, allowHorz, allowVert bool) ([]Rect, bool) {
	rect, ok := pf.crop(rect)
	if !ok {
		return nil, false
	}
	if rect.W < pf.minFrameW || rect.H < pf.minFrameH {
		return nil, false
	}

	attempts := [2]struct {
		allowed    bool
		horizontal bool
	}{
		{allowHorz, true},
		{allowVert, false},
	}

	for _, a := range attempts {
		if !a.allowed {
			continue
		}

		var minNb, startStep, stepSize, nbSteps, startLine, linePitch, nbLines int
		if a.horizontal {
			minNb = pf.minFrameH
			startStep, stepSize, nbSteps = rect.X, 1, rect.W
			startLine, linePitch, nbLines = rect.Y, pf.imageW, rect.H
		} else {
			minNb = pf.minFrameW
			startStep, stepSize, nbSteps = rect.Y, pf.imageW, rect.H
			startLine, linePitch, nbLines = rect.X, 1, rect.W
		}
		if nbLines <= minNb*2 {
			continue
		}

		curLine := startLine + minNb
		endLine := curLine + nbLines - 2*minNb

		for curLine < endLine {
			pos := startStep*stepSize + curLine*linePitch
			nbFg := CountLines(pf.mask, maxImperfectionSize, false, pos, stepSize, nbSteps, linePitch, endLine-curLine)
			splitSize := curLine + nbFg - startLine + 1

			var first Rect
			if a.horizontal {
				first = Rect{X: rect.X, Y: rect.Y, W: rect.W, H: splitSize}
			} else {
				first = Rect{X: rect.X, Y: rect.Y, W: splitSize, H: rect.H}
			}

			firstFrames, ok := pf.findFramesRec(first, !a.horizontal, a.horizontal)
			if !ok {
				curLine += nbFg
				if curLine >= endLine {
					break
				}
				bgPos := startStep*stepSize + curLine*linePitch
				nbBg := CountLines(pf.mask, maxImperfectionSize, true, bgPos, stepSize, nbSteps, linePitch, endLine-curLine)
				curLine += nbBg
				continue
			}

			var second Rect
			if a.horizontal {
				second = Rect{X: rect.X, Y: first.Y + first.H, W: rect.W, H: rect.H - first.H}
			} else {
				second = Rect{X: first.X + first.W, Y: rect.Y, W: rect.W - first.W, H: rect.H}
			}
			secondFrames, ok2 := pf.findFramesRec(second, true, true)
			if !ok2 {
				break
			}
			return append(firstFrames, secondFrames...), true
		}
	}

	return []Rect{rect}, true
}
