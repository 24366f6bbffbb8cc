package scrollcore

// maxImperfectionSize is the longest run of foreground samples on a line
// that is still tolerated as noise within an otherwise blank gutter.
const maxImperfectionSize = 3

// CountLines is the sole pixel-level primitive of the segmentation core.
// It walks lines of samples through mask starting at byte offset
// startStep, stepping outward by linePitch between successive lines; each
// line is itself nbSteps samples wide with stride stepSize. A line is
// classified "background" iff the longest run of foreground (nonzero)
// samples on it is at most maxIgnore. CountLines stops as soon as a line's
// classification differs from wantBg, or after maxLines lines, and returns
// the number of lines matching wantBg.
//
// stepSize and linePitch may be negative; callers choose the unit (pixels,
// rows) each represents by their choice of strides. This is the only
// pixel-level hot path in the core, and a plain scalar loop handles a
// 4-megapixel page in a few milliseconds.
func CountLines(mask *ImageMask, maxIgnore int, wantBg bool, startStep, stepSize, nbSteps, linePitch, maxLines int) int {
	count := 0
	pos := startStep
	for line := 0; line < maxLines; line++ {
		if isBgLine(mask.Pix, maxIgnore, pos, stepSize, nbSteps) != wantBg {
			break
		}
		count++
		pos += linePitch
	}
	return count
}

// isBgLine reports whether the line of nbSteps samples starting at pos
// with stride stepSize is background: the longest run of consecutive
// foreground (nonzero) samples must be at most maxIgnore.
func isBgLine(pix []byte, maxIgnore, pos, stepSize, nbSteps int) bool {
	run := 0
	for i := 0; i < nbSteps; i++ {
		if pix[pos] == 0 {
			run = 0
		} else {
			run++
			if run > maxIgnore {
				return false
			}
		}
		pos += stepSize
	}
	return true
}
