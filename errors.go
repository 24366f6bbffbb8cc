package scrollcore

import "errors"

// Sentinel errors returned by the core. Callers should use errors.Is rather
// than comparing error strings.
var (
	// ErrInvalidInput is returned for an image with zero area, or that
	// cannot be treated as 8-bit RGB.
	ErrInvalidInput = errors.New("scrollcore: invalid input image")

	// ErrIndexOutOfRange is returned by Scroll when an explicit to-frame
	// argument falls outside [-len(frames), len(frames)).
	ErrIndexOutOfRange = errors.New("scrollcore: frame index out of range")
)
