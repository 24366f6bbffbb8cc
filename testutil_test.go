package scrollcore

import (
	"image"
	"image/color"
)

// makeTestPage builds a w x h RGBA image filled with bg, with each rect in
// rects painted black on top. Tests use this instead of loading real comic
// pages to exercise the scenarios the design notes describe.
func makeTestPage(w, h int, bg Color, rects []Rect) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bgc := color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bgc)
		}
	}
	black := color.RGBA{A: 255}
	for _, r := range rects {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img
}
