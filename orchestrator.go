package scrollcore

import (
	"image"
	"time"

	"github.com/rs/zerolog"
)

// Orchestrator wires the segmentation core together for one page at a
// time: SetupImage segments a page into frames, SetupView tiles any
// oversize frame for a viewport, and Scroll walks the resulting frame list
// row by row. It owns the frame list and scroll state for the lifetime of
// one prepared page; it is not safe for concurrent use, and SetupImage
// must never be called concurrently with Scroll on the same Orchestrator.
type Orchestrator struct {
	log zerolog.Logger

	frames         []Frame
	imageW, imageH int
	cursor         *ScrollCursor
}

// NewOrchestrator returns an Orchestrator that logs through log. A
// zerolog.Nop() logger silences all logging.
func NewOrchestrator(log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		log:    log,
		cursor: NewScrollCursor(0, 0),
	}
}

// SetupImage estimates nothing about bg itself — the caller (typically
// EstimateBackground, or a value read back from an ACV manifest) supplies
// it — but segments img into an ordered Frame list using it as the cut
// color. It replaces any previously prepared page and resets the scroll
// cursor to frame 0.
func (o *Orchestrator) SetupImage(img image.Image, bg Color) error {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrInvalidInput
	}

	start := time.Now()
	mask := Binarize(img, bg)
	finder := NewPanelFinder(mask)
	rects := finder.FindFrames()

	frames := make([]Frame, len(rects))
	for i, r := range rects {
		frames[i] = Frame{Rect: r, Number: uint32(i)}
	}

	o.frames = frames
	o.imageW, o.imageH = mask.W, mask.H
	o.cursor.Reset()

	o.log.Info().
		Int("width", mask.W).
		Int("height", mask.H).
		Int("frames", len(frames)).
		Dur("elapsed", time.Since(start)).
		Msg("segmented page")

	return nil
}

// SetupView tiles every current frame to fit within (width, height),
// atomically replacing the frame list, and resets the scroll cursor.
func (o *Orchestrator) SetupView(width, height uint32) {
	tiled := make([]Frame, 0, len(o.frames))
	for _, f := range o.frames {
		tiled = append(tiled, SplitFrame(f, int(width), int(height))...)
	}
	o.frames = tiled
	o.cursor.SetView(width, height)
	o.cursor.Reset()

	o.log.Debug().
		Uint32("view_w", width).
		Uint32("view_h", height).
		Int("tiles", len(tiled)).
		Msg("tiled frames for viewport")
}

// Scroll advances the cursor by one row; see ScrollCursor.Scroll for exact
// semantics.
func (o *Orchestrator) Scroll(toFrame *int, backward bool) (Rect, bool, error) {
	bbox, ok, err := o.cursor.Scroll(o.frames, toFrame, backward)
	if err != nil {
		o.log.Error().Err(err).Msg("scroll failed")
	}
	return bbox, ok, err
}

// Frames returns the current frame list. The caller must treat it as
// read-only: Orchestrator mutates it only from SetupImage and SetupView.
func (o *Orchestrator) Frames() []Frame {
	return o.frames
}

// CurrentFrames returns the first and last visible frame indices.
func (o *Orchestrator) CurrentFrames() (first, last uint32) {
	return o.cursor.Current()
}

// ImageSize returns the dimensions of the page most recently passed to
// SetupImage.
func (o *Orchestrator) ImageSize() (w, h int) {
	return o.imageW, o.imageH
}
