package scrollcore

// ScrollCursor walks a frame list one row at a time. A row is a maximal
// run of consecutive frames whose combined bounding box fits inside the
// viewport. The cursor borrows the frame list read-only for each call; it
// does not own it and is not notified when the list is replaced — callers
// (the Orchestrator) must Reset the cursor after changing the frame list.
type ScrollCursor struct {
	started                   bool
	firstVisible, lastVisible uint32
	viewX, viewY              int
	viewW, viewH              uint32
}

// NewScrollCursor returns a cursor positioned at frame 0 for the given
// viewport size.
func NewScrollCursor(viewW, viewH uint32) *ScrollCursor {
	return &ScrollCursor{viewW: viewW, viewH: viewH}
}

// Reset returns the cursor to its initial position (first/last visible
// frame 0, viewport origin at (0,0)). Call this whenever the frame list
// the cursor walks has changed.
func (c *ScrollCursor) Reset() {
	c.started = false
	c.firstVisible, c.lastVisible = 0, 0
	c.viewX, c.viewY = 0, 0
}

// SetView updates the viewport size used by future Scroll calls.
func (c *ScrollCursor) SetView(w, h uint32) {
	c.viewW, c.viewH = w, h
}

// Current returns the first and last visible frame indices.
func (c *ScrollCursor) Current() (first, last uint32) {
	return c.firstVisible, c.lastVisible
}

// Scroll advances (or retreats, if backward) the cursor by one row within
// frames and returns that row's bounding box. If toFrame is non-nil it
// overrides the current position: non-negative values index directly,
// negative values count back from the end of frames (Python-style), and an
// out-of-range value is an error. Otherwise Scroll continues from the
// current position in the requested direction; the first forward call
// after a Reset shows the row starting at frame 0.
//
// Scroll returns ok=false, with a nil error, when there is no next row in
// that direction — this is the normal end-of-list condition, not a
// failure. An explicit out-of-range toFrame is the one case that returns
// an error.
func (c *ScrollCursor) Scroll(frames []Frame, toFrame *int, backward bool) (bbox Rect, ok bool, err error) {
	if len(frames) == 0 {
		return Rect{}, false, nil
	}

	step := 1
	if backward {
		step = -1
	}

	var nextFrame int
	if toFrame != nil {
		n := *toFrame
		if n >= 0 {
			nextFrame = n
		} else {
			nextFrame = len(frames) + n
		}
		if nextFrame < 0 || nextFrame >= len(frames) {
			return Rect{}, false, ErrIndexOutOfRange
		}
	} else if !c.started {
		// Nothing has been shown yet: the first forward scroll after a
		// Reset starts on frame 0 rather than past it. Backward from this
		// state has nowhere to go.
		if backward {
			return Rect{}, false, nil
		}
		nextFrame = 0
	} else {
		var lastVisibleFrame int
		if backward {
			lastVisibleFrame = int(min(c.firstVisible, c.lastVisible))
		} else {
			lastVisibleFrame = int(max(c.firstVisible, c.lastVisible))
		}
		vbox := Rect{X: c.viewX, Y: c.viewY, W: int(c.viewW), H: int(c.viewH)}
		for _, idx := range walkNoSplitSpill(frames, lastVisibleFrame, step) {
			if !frames[idx].Rect.Inside(vbox) {
				break
			}
			lastVisibleFrame = idx
		}
		nextFrame = lastVisibleFrame + step
		if nextFrame < 0 || nextFrame >= len(frames) {
			return Rect{}, false, nil
		}
	}

	firstVisibleFrame := nextFrame
	lastVisibleFrame := nextFrame
	bbox = frames[nextFrame].Rect
	for _, idx := range walkNoSplitSpill(frames, firstVisibleFrame, step) {
		newBBox := bbox.Union(frames[idx].Rect)
		if newBBox.W > int(c.viewW) || newBBox.H > int(c.viewH) {
			break
		}
		lastVisibleFrame = idx
		bbox = newBBox
	}

	c.started = true
	c.firstVisible, c.lastVisible = uint32(firstVisibleFrame), uint32(lastVisibleFrame)
	c.viewX, c.viewY = bbox.X, bbox.Y
	return bbox, true, nil
}

// walkNoSplitSpill yields successive frame indices from start in the
// given direction, stopping before any frame whose Split is non-nil and
// whose Number differs from the last-yielded frame's Number. This keeps a
// row from ending on the first tile of a tiled oversize panel when the
// previous frame belonged to a different panel: tiled panels are always
// entered from their first tile.
func walkNoSplitSpill(frames []Frame, start, step int) []int {
	var out []int
	last, next := start, start
	for {
		next += step
		if next < 0 || next >= len(frames) {
			return out
		}
		nf, lf := frames[next], frames[last]
		if nf.Split != nil && nf.Number != lf.Number {
			return out
		}
		out = append(out, next)
		last = next
	}
}
