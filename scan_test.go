package scrollcore

import "testing"

func TestCountLinesBackgroundRun(t *testing.T) {
	// a 5-wide, 5-row mask: rows 0-2 are background (all zero), rows 3-4
	// are fully foreground (run 5, past maxImperfectionSize of 3).
	const w = 5
	pix := make([]byte, w*5)
	for y := 3; y < 5; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = 255
		}
	}
	mask := &ImageMask{W: w, H: 5, Pix: pix}
	n := CountLines(mask, maxImperfectionSize, true, 0, 1, w, w, 5)
	if n != 3 {
		t.Errorf("CountLines = %d, want 3", n)
	}
}

func TestCountLinesToleratesSmallImperfection(t *testing.T) {
	// a 10-wide line with a 2-pixel foreground blemish counts as
	// background, since maxImperfectionSize is 3.
	pix := make([]byte, 10)
	pix[4], pix[5] = 255, 255
	mask := &ImageMask{W: 10, H: 1, Pix: pix}
	if !isBgLine(mask.Pix, maxImperfectionSize, 0, 1, 10) {
		t.Error("line with a 2px blemish should still read as background")
	}
}

func TestCountLinesRejectsLargeImperfection(t *testing.T) {
	pix := make([]byte, 10)
	for i := 3; i < 8; i++ {
		pix[i] = 255
	}
	mask := &ImageMask{W: 10, H: 1, Pix: pix}
	if isBgLine(mask.Pix, maxImperfectionSize, 0, 1, 10) {
		t.Error("line with a 5px foreground run should not read as background")
	}
}

func TestCountLinesReverseStride(t *testing.T) {
	// scanning right-to-left and bottom-to-top via negative strides. Row
	// width 5 so a fully foreground row (run 5) exceeds maxImperfectionSize
	// (3) and reads as foreground, not background.
	const w = 5
	mask := &ImageMask{W: w, H: 3, Pix: []byte{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		255, 255, 255, 255, 255,
	}}
	// start at bottom-right corner, step up one row at a time (pitch -w).
	start := 2*w + (w - 1)
	n := CountLines(mask, maxImperfectionSize, false, start, -1, w, -w, 3)
	if n != 1 {
		t.Errorf("CountLines (reverse) = %d, want 1", n)
	}
}
