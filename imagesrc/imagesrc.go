// Package imagesrc supplies page images to the segmentation core from
// three book shapes: a bare directory of loose image files, a single
// standalone image file, and a zip/cbz archive. Pages are decoded
// synchronously on demand; there is no prefetching.
package imagesrc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/mcomix-go/scrollcore"
)

// imgExtensions are the recognized page file extensions. The netpbm
// family is listed so such files count as pages, but decoding them fails
// with a clear error (see DecodeImage).
var imgExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"tif": true, "tiff": true, "bmp": true,
	"ppm": true, "pgm": true, "pbm": true,
}

// IsImageFile reports whether name has a recognized page-image extension.
func IsImageFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return imgExtensions[ext]
}

// ComicBook is an ordered, read-only sequence of page images.
type ComicBook interface {
	// Len returns the number of pages.
	Len() int
	// Name returns a human-readable name for the book, typically derived
	// from the source path with its extension stripped.
	Name() string
	// FileName returns the page's original file name (no directory
	// components).
	FileName(index int) string
	// ReadPage returns the page's raw encoded bytes.
	ReadPage(index int) ([]byte, error)
	// Image decodes page index into an image.Image.
	Image(index int) (image.Image, error)
	// Close releases any resources (open archive handles, caches) held by
	// the book.
	Close() error
}

// DecodeImage decodes raw encoded image bytes, dispatching on the
// registered stdlib and golang.org/x/image decoders. Unsupported formats
// (.ppm/.pgm/.pbm, which have no maintained Go decoder) return a wrapped
// scrollcore.ErrInvalidInput naming the file, rather than silently
// miscounting the page.
func DecodeImage(name string, data []byte) (image.Image, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "ppm", "pgm", "pbm":
		return nil, fmt.Errorf("imagesrc: %s: %s format has no Go decoder: %w", name, ext, scrollcore.ErrInvalidInput)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagesrc: decoding %s: %w", name, err)
	}
	return img, nil
}

// naturalLess orders names the way a human would: runs of digits compare
// numerically rather than lexically, so "page2.png" sorts before
// "page10.png".
func naturalLess(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		ca, cb := ar[i], br[j]
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			starti, startj := i, j
			for i < len(ar) && unicode.IsDigit(ar[i]) {
				i++
			}
			for j < len(br) && unicode.IsDigit(br[j]) {
				j++
			}
			na, erra := strconv.Atoi(string(ar[starti:i]))
			nb, errb := strconv.Atoi(string(br[startj:j]))
			if erra == nil && errb == nil && na != nb {
				return na < nb
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(ar)-i < len(br)-j
}

func sortNatural(names []string) {
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
}

func scrollErrIndexOutOfRange(i int) error {
	return fmt.Errorf("imagesrc: page index %d: %w", i, scrollcore.ErrIndexOutOfRange)
}
