package scrollcore

import "fmt"

// Rect is an axis-aligned rectangle of nonnegative integer pixel
// coordinates. A Rect exposed by this package always has W >= 1 and H >= 1;
// an empty crop is represented by the second, ok return value of the
// function that produced it rather than by a zero-area Rect.
type Rect struct {
	X, Y int
	W, H int
}

// X0, Y0, X1, Y1 are the inclusive corner coordinates of r.
func (r Rect) X0() int { return r.X }
func (r Rect) Y0() int { return r.Y }
func (r Rect) X1() int { return r.X + r.W - 1 }
func (r Rect) Y1() int { return r.Y + r.H - 1 }

// rectFromPoints builds a Rect from inclusive corner coordinates.
func rectFromPoints(x0, y0, x1, y1 int) Rect {
	return Rect{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

// Empty reports whether r has zero area along either axis.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inside reports whether r lies entirely within bbox.
func (r Rect) Inside(bbox Rect) bool {
	if r.X < bbox.X || r.Y < bbox.Y {
		return false
	}
	if r.X+r.W > bbox.X+bbox.W || r.Y+r.H > bbox.Y+bbox.H {
		return false
	}
	return true
}

// Union returns the smallest Rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	x1 := max(r.X+r.W, other.X+other.W)
	y1 := max(r.Y+r.H, other.Y+other.H)
	return Rect{X: x, Y: y, W: x1 - x, H: y1 - y}
}

func (r Rect) String() string {
	return fmt.Sprintf("%+d%+d:%dx%d", r.X, r.Y, r.W, r.H)
}

// Frame is one panel, or one tile of an oversize panel, in reading order.
//
// Number is the panel's 0-based index in reading order. Split is nil for an
// un-tiled original panel; otherwise it holds the 0-based tile index within
// that panel. The frame slice held by Orchestrator is always sorted by
// Number ascending and, within one Number, by Split ascending, with the
// tiles of one panel forming a contiguous run.
type Frame struct {
	Rect   Rect
	Number uint32
	Split  *uint32
}

func (f Frame) String() string {
	if f.Split == nil {
		return fmt.Sprintf("%d:%s", f.Number, f.Rect)
	}
	return fmt.Sprintf("%d.%d:%s", f.Number, *f.Split, f.Rect)
}
