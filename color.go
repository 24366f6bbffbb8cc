package scrollcore

import (
	"image"
	"sort"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// luminance returns the integer-weighted luma of c, matching the constant
// used by Binarizer: (299*R + 587*G + 114*B) / 1000.
func (c Color) luminance() int {
	return (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
}

const (
	defaultEdgeWidth = 2
	colorBinSize     = 10
)

// EstimateBackground returns the dominant pixel color sampled from the
// union of the left and right edge strips of the image, each edgeWidth
// pixels wide. A non-positive edgeWidth defaults to 2.
//
// The estimate is robust to JPEG dither: colors are grouped into coarse
// bins (bin size 10 per channel, ties rounding up) before picking the
// dominant bin, and the most frequent exact color within that bin is
// returned.
func EstimateBackground(img image.Image, edgeWidth int) (Color, error) {
	if edgeWidth <= 0 {
		edgeWidth = defaultEdgeWidth
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Color{}, ErrInvalidInput
	}

	hist := make(map[Color]int)
	strip := edgeWidth
	if strip > w {
		strip = w
	}

	countColumn := func(x int) {
		for y := 0; y < h; y++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c := Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
			hist[c]++
		}
	}
	for x := 0; x < strip; x++ {
		countColumn(x)
	}
	for x := w - strip; x < w; x++ {
		if x < strip {
			continue // already counted; strips overlap on very narrow images
		}
		countColumn(x)
	}

	type entry struct {
		c     Color
		count int
	}
	entries := make([]entry, 0, len(hist))
	for c, n := range hist {
		entries = append(entries, entry{c, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, bb := entries[i].c, entries[j].c
		if a.R != bb.R {
			return a.R < bb.R
		}
		if a.G != bb.G {
			return a.G < bb.G
		}
		return a.B < bb.B
	})

	type group struct {
		bin   Color
		total int
		best  entry
	}
	var groups []group
	for _, e := range entries {
		bin := roundToBin(e.c, colorBinSize)
		if n := len(groups); n > 0 && groups[n-1].bin == bin {
			groups[n-1].total += e.count
			if e.count > groups[n-1].best.count {
				groups[n-1].best = e
			}
			continue
		}
		groups = append(groups, group{bin: bin, total: e.count, best: e})
	}

	best := groups[0]
	for _, g := range groups[1:] {
		if g.total > best.total {
			best = g
		}
	}
	return best.best.c, nil
}

// roundToBin rounds each channel of c to the nearest multiple of steps,
// with ties (remainder >= steps/2, biased up for odd steps) rounding up.
func roundToBin(c Color, steps int) Color {
	return Color{
		R: uint8(roundChannel(int(c.R), steps)),
		G: uint8(roundChannel(int(c.G), steps)),
		B: uint8(roundChannel(int(c.B), steps)),
	}
}

func roundChannel(v, steps int) int {
	middle := steps / 2
	if steps%2 != 0 {
		middle++
	}
	remainder := v % steps
	if remainder >= middle {
		v += steps - remainder
	} else {
		v -= remainder
	}
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return v
}
