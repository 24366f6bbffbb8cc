package scrollcore

import "image"

// luminanceThreshold is the fixed tolerance around the background
// luminance within which a pixel is still classified as background.
const luminanceThreshold = 16

// ImageMask is an immutable w x h array of bytes: 0 marks a background
// pixel, 255 marks a foreground pixel. It is created once per SetupImage
// call, consulted by the PanelFinder during segmentation, and discarded
// when segmentation ends — it never outlives the Orchestrator call that
// built it.
type ImageMask struct {
	W, H int
	Pix  []byte // row-major, one byte per pixel
}

// at returns the mask byte at (x, y); callers must keep x, y in bounds.
func (m *ImageMask) at(x, y int) byte {
	return m.Pix[y*m.W+x]
}

// Binarize converts img to a background/foreground mask using a luminance
// threshold centered on bg. A pixel is background iff its luminance is
// within luminanceThreshold of bg's luminance.
func Binarize(img image.Image, bg Color) *ImageMask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	bgLum := bg.luminance()

	mask := &ImageMask{W: w, H: h, Pix: make([]byte, w*h)}
	for y := 0; y < h; y++ {
		row := mask.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c := Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
			lum := c.luminance()
			delta := lum - bgLum
			if delta < 0 {
				delta = -delta
			}
			if delta <= luminanceThreshold {
				row[x] = 0
			} else {
				row[x] = 255
			}
		}
	}
	return mask
}
