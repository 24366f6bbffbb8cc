// Package acv reads and writes the ACV comic manifest format: a zip
// archive holding page images alongside an acv.xml index that records,
// per page, a background color and the panel rectangles (as fractions of
// the page size) a segmentation pass found on it.
package acv

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mcomix-go/scrollcore"
)

// ErrMalformedManifest is returned, wrapped with a descriptive message,
// for every validation failure the reader detects: a root element other
// than <comic>, a duplicate screen index, an invalid bgcolor, or a frame
// with a missing, wrong-arity, or out-of-range relativeArea.
var ErrMalformedManifest = errors.New("acv: malformed manifest")

// RelativeFrame is one panel rectangle expressed as a fraction, in [0,1],
// of the page's width and height.
type RelativeFrame struct {
	X, Y, W, H float64
}

// PageManifest is one <screen> entry: its 0-based index, an optional
// bgcolor override (nil means inherit the comic-level color), and its
// ordered frame rectangles.
type PageManifest struct {
	Index   int
	BgColor *scrollcore.Color
	Frames  []RelativeFrame
}

// Manifest is the fully parsed contents of an acv.xml.
type Manifest struct {
	BgColor *scrollcore.Color
	Pages   []PageManifest
}

// Page returns the manifest entry for the given page index, if present.
func (m *Manifest) Page(index int) (PageManifest, bool) {
	for _, p := range m.Pages {
		if p.Index == index {
			return p, true
		}
	}
	return PageManifest{}, false
}

type xmlFrame struct {
	RelativeArea string `xml:"relativeArea,attr"`
}

type xmlScreen struct {
	Index   string     `xml:"index,attr"`
	BgColor string     `xml:"bgcolor,attr"`
	Frames  []xmlFrame `xml:"frame"`
}

type xmlComic struct {
	XMLName xml.Name    `xml:"comic"`
	BgColor string      `xml:"bgcolor,attr"`
	Screens []xmlScreen `xml:"screen"`
}

// ReadManifest opens the zip archive at path, locates acv.xml within it,
// and parses and validates it into a Manifest. On any validation error no
// partial Manifest is returned — the caller gets only the error, never a
// half-applied document.
func ReadManifest(path string) (*Manifest, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("acv: open %s: %w", path, err)
	}
	defer zr.Close()

	var manifestFile *zip.File
	for _, f := range zr.File {
		if f.Name == "acv.xml" {
			manifestFile = f
			break
		}
	}
	if manifestFile == nil {
		return nil, fmt.Errorf("acv: %s has no acv.xml: %w", path, ErrMalformedManifest)
	}

	rc, err := manifestFile.Open()
	if err != nil {
		return nil, fmt.Errorf("acv: opening acv.xml in %s: %w", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("acv: reading acv.xml in %s: %w", path, err)
	}

	return parseManifest(data)
}

func parseManifest(data []byte) (*Manifest, error) {
	var doc xmlComic
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("acv: root element is not comic: %w: %v", ErrMalformedManifest, err)
	}

	var comicBg *scrollcore.Color
	if doc.BgColor != "" {
		c, err := parseBgColor(doc.BgColor)
		if err != nil {
			return nil, fmt.Errorf("acv: invalid comic bgcolor %q: %w", doc.BgColor, ErrMalformedManifest)
		}
		comicBg = &c
	}

	seen := make(map[int]bool, len(doc.Screens))
	pages := make([]PageManifest, 0, len(doc.Screens))
	for _, s := range doc.Screens {
		if s.Index == "" {
			return nil, fmt.Errorf("acv: screen has no index attribute: %w", ErrMalformedManifest)
		}
		idx, err := strconv.Atoi(s.Index)
		if err != nil {
			return nil, fmt.Errorf("acv: invalid screen index %q: %w", s.Index, ErrMalformedManifest)
		}
		if seen[idx] {
			return nil, fmt.Errorf("acv: duplicate screen %d: %w", idx, ErrMalformedManifest)
		}
		seen[idx] = true

		page := PageManifest{Index: idx}
		if s.BgColor != "" {
			c, err := parseBgColor(s.BgColor)
			if err != nil {
				return nil, fmt.Errorf("acv: invalid screen bgcolor %q: %w", s.BgColor, ErrMalformedManifest)
			}
			page.BgColor = &c
		}

		for _, fr := range s.Frames {
			rf, err := parseRelativeArea(fr.RelativeArea)
			if err != nil {
				return nil, err
			}
			page.Frames = append(page.Frames, rf)
		}
		pages = append(pages, page)
	}

	return &Manifest{BgColor: comicBg, Pages: pages}, nil
}

func parseRelativeArea(s string) (RelativeFrame, error) {
	if s == "" {
		return RelativeFrame{}, fmt.Errorf("acv: frame has no relativeArea attribute: %w", ErrMalformedManifest)
	}
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return RelativeFrame{}, fmt.Errorf("acv: invalid frame relativeArea %q: %w", s, ErrMalformedManifest)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 || v > 1 {
			return RelativeFrame{}, fmt.Errorf("acv: invalid frame relativeArea %q: %w", s, ErrMalformedManifest)
		}
		vals[i] = v
	}
	return RelativeFrame{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

func parseBgColor(s string) (scrollcore.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return scrollcore.Color{}, fmt.Errorf("bad bgcolor syntax")
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return scrollcore.Color{}, err
	}
	return scrollcore.Color{R: byte(v >> 16), G: byte(v >> 8), B: byte(v)}, nil
}

// PageImage bundles one page's manifest entry with the (possibly
// downscaled) image bytes to store for it, and the filename under which
// to store them. Directory components are stripped on write; downstream
// readers expect flat archives.
type PageImage struct {
	Manifest PageManifest
	Filename string
	Data     []byte
}

// WriteManifest creates a new ACV archive at outPath containing acv.xml
// plus every page's image data. It refuses to overwrite an existing file.
func WriteManifest(outPath string, comicBg *scrollcore.Color, pages []PageImage) (err error) {
	if _, statErr := os.Stat(outPath); statErr == nil {
		return fmt.Errorf("acv: output already exists: %s", outPath)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("acv: creating %s: %w", outPath, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	defer func() {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}()

	xmlW, err := zw.Create("acv.xml")
	if err != nil {
		return fmt.Errorf("acv: creating acv.xml entry: %w", err)
	}
	if err := writeManifestXML(xmlW, comicBg, pages); err != nil {
		return err
	}

	for _, p := range pages {
		entryW, err := zw.Create(filepath.Base(p.Filename))
		if err != nil {
			return fmt.Errorf("acv: creating %s entry: %w", p.Filename, err)
		}
		if _, err := entryW.Write(p.Data); err != nil {
			return fmt.Errorf("acv: writing %s entry: %w", p.Filename, err)
		}
	}
	return nil
}

func writeManifestXML(w io.Writer, comicBg *scrollcore.Color, pages []PageImage) error {
	var b strings.Builder
	b.WriteString("<comic")
	if comicBg != nil {
		fmt.Fprintf(&b, ` bgcolor="#%02x%02x%02x"`, comicBg.R, comicBg.G, comicBg.B)
	}
	b.WriteString(">\n")
	for _, p := range pages {
		fmt.Fprintf(&b, ` <screen index="%d"`, p.Manifest.Index)
		if p.Manifest.BgColor != nil {
			c := p.Manifest.BgColor
			fmt.Fprintf(&b, ` bgcolor="#%02x%02x%02x"`, c.R, c.G, c.B)
		}
		b.WriteString(">\n")
		for _, fr := range p.Manifest.Frames {
			fmt.Fprintf(&b, "  <frame relativeArea=\"%f %f %f %f\"/>\n", fr.X, fr.Y, fr.W, fr.H)
		}
		b.WriteString(" </screen>\n")
	}
	b.WriteString("</comic>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ClipToPage clips a pixel-space rectangle to the page bounds (width,
// height), shrinking it from whichever edges it overflows rather than
// discarding it. Callers clamp each frame this way before converting it
// to relative coordinates, so every serialized value stays in [0,1].
func ClipToPage(r scrollcore.Rect, width, height int) scrollcore.Rect {
	x, y, w, h := r.X, r.Y, r.W, r.H
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > width {
		w = width - x
	}
	if y < 0 {
		h += y
		y = 0
	}
	if y+h > height {
		h = height - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return scrollcore.Rect{X: x, Y: y, W: w, H: h}
}

// ToRelative converts a pixel-space rectangle, already clipped to the
// page, into fractional page coordinates.
func ToRelative(r scrollcore.Rect, width, height int) RelativeFrame {
	return RelativeFrame{
		X: float64(r.X) / float64(width),
		Y: float64(r.Y) / float64(height),
		W: float64(r.W) / float64(width),
		H: float64(r.H) / float64(height),
	}
}

// BuildPageManifest walks orch one row at a time, recording one
// RelativeFrame per row's bounding box (clipped to the page and made
// relative). orch must already have had SetupImage called for this page;
// SetupView is optional, and without it every frame forms a row of its own.
func BuildPageManifest(orch *scrollcore.Orchestrator, index int, bg scrollcore.Color, pageW, pageH int) (PageManifest, error) {
	page := PageManifest{Index: index, BgColor: &bg}

	total := len(orch.Frames())
	fn := 0
	for fn < total {
		target := fn
		bbox, ok, err := orch.Scroll(&target, false)
		if err != nil {
			return PageManifest{}, err
		}
		if !ok {
			break
		}
		clipped := ClipToPage(bbox, pageW, pageH)
		page.Frames = append(page.Frames, ToRelative(clipped, pageW, pageH))

		_, last := orch.CurrentFrames()
		fn = int(last) + 1
	}
	return page, nil
}
