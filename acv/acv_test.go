package acv

import (
	"archive/zip"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mcomix-go/scrollcore"
)

// gridPage renders a white wxh page with the given black rectangles,
// matching the synthetic panel layouts scrollcore's own tests use.
func gridPage(w, h int, rects []scrollcore.Rect) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, white)
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

func writeZip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for entry, content := range files {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadManifestValid(t *testing.T) {
	dir := t.TempDir()
	xmlDoc := `<comic bgcolor="#ffffff">
 <screen index="0" bgcolor="#112233">
  <frame relativeArea="0.0 0.0 0.5 0.5"/>
  <frame relativeArea="0.5 0.5 0.5 0.5"/>
 </screen>
 <screen index="1">
 </screen>
</comic>`
	path := writeZip(t, dir, "book.acv", map[string]string{"acv.xml": xmlDoc, "page0.png": "x"})

	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.BgColor == nil || *m.BgColor != (scrollcore.Color{R: 0xff, G: 0xff, B: 0xff}) {
		t.Errorf("comic bgcolor = %v", m.BgColor)
	}
	if len(m.Pages) != 2 {
		t.Fatalf("len(Pages) = %d, want 2", len(m.Pages))
	}
	p0, ok := m.Page(0)
	if !ok {
		t.Fatal("page 0 missing")
	}
	if len(p0.Frames) != 2 {
		t.Fatalf("page 0 frames = %d, want 2", len(p0.Frames))
	}
	if p0.BgColor == nil || *p0.BgColor != (scrollcore.Color{R: 0x11, G: 0x22, B: 0x33}) {
		t.Errorf("page 0 bgcolor = %v", p0.BgColor)
	}
}

func TestReadManifestMalformed(t *testing.T) {
	cases := []struct {
		name string
		xml  string
	}{
		{"wrong root", `<book></book>`},
		{"duplicate screen", `<comic><screen index="0"></screen><screen index="0"></screen></comic>`},
		{"bad comic bgcolor", `<comic bgcolor="red"></comic>`},
		{"bad screen bgcolor", `<comic><screen index="0" bgcolor="#zzzzzz"></screen></comic>`},
		{"missing relativeArea", `<comic><screen index="0"><frame/></screen></comic>`},
		{"wrong arity", `<comic><screen index="0"><frame relativeArea="0.1 0.2 0.3"/></screen></comic>`},
		{"out of range", `<comic><screen index="0"><frame relativeArea="0.1 0.2 0.3 1.5"/></screen></comic>`},
		{"missing index", `<comic><screen></screen></comic>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeZip(t, dir, "book.acv", map[string]string{"acv.xml": tc.xml})
			_, err := ReadManifest(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestReadManifestMissingXML(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "book.acv", map[string]string{"page0.png": "x"})
	if _, err := ReadManifest(path); err == nil {
		t.Fatal("expected error for missing acv.xml")
	}
}

func TestWriteThenReadManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.acv")
	bg := scrollcore.Color{R: 10, G: 20, B: 30}
	pages := []PageImage{
		{
			Manifest: PageManifest{
				Index:   0,
				BgColor: &bg,
				Frames:  []RelativeFrame{{X: 0, Y: 0, W: 1, H: 0.5}, {X: 0, Y: 0.5, W: 1, H: 0.5}},
			},
			Filename: "dir/page0.png",
			Data:     []byte("fake-png-bytes"),
		},
	}
	if err := WriteManifest(out, &bg, pages); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	m, err := ReadManifest(out)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if len(m.Pages) != 1 || len(m.Pages[0].Frames) != 2 {
		t.Fatalf("unexpected manifest: %+v", m)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	var sawPage bool
	for _, f := range zr.File {
		if f.Name == "page0.png" {
			sawPage = true
		}
		if filepath.Dir(f.Name) != "." {
			t.Errorf("entry %q was not junked to a bare filename", f.Name)
		}
	}
	if !sawPage {
		t.Error("page0.png entry missing from archive")
	}
}

func TestWriteManifestRefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.acv")
	if err := os.WriteFile(out, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteManifest(out, nil, nil); err == nil {
		t.Fatal("expected error for pre-existing output path")
	}
}

func TestACVRoundTripFromSegmentation(t *testing.T) {
	white := scrollcore.Color{R: 255, G: 255, B: 255}
	tl := scrollcore.Rect{X: 50, Y: 50, W: 300, H: 300}
	tr := scrollcore.Rect{X: 450, Y: 50, W: 300, H: 300}
	bl := scrollcore.Rect{X: 50, Y: 450, W: 300, H: 300}
	br := scrollcore.Rect{X: 450, Y: 450, W: 300, H: 300}
	want := []scrollcore.Rect{tl, tr, bl, br}

	img := gridPage(800, 800, want)

	orch := scrollcore.NewOrchestrator(zerolog.Nop())
	if err := orch.SetupImage(img, white); err != nil {
		t.Fatalf("SetupImage: %v", err)
	}
	if len(orch.Frames()) != 4 {
		t.Fatalf("segmented %d frames, want 4", len(orch.Frames()))
	}

	pageW, pageH := orch.ImageSize()
	manifest, err := BuildPageManifest(orch, 0, white, pageW, pageH)
	if err != nil {
		t.Fatalf("BuildPageManifest: %v", err)
	}
	if len(manifest.Frames) != 4 {
		t.Fatalf("manifest has %d frames, want 4", len(manifest.Frames))
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "grid.acv")
	if err := WriteManifest(out, &white, []PageImage{{Manifest: manifest, Filename: "page0.png", Data: []byte("x")}}); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	reloaded, err := ReadManifest(out)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	page, ok := reloaded.Page(0)
	if !ok {
		t.Fatal("page 0 missing after reload")
	}
	if len(page.Frames) != 4 {
		t.Fatalf("reloaded %d frames, want 4", len(page.Frames))
	}

	for i, rf := range page.Frames {
		gotRect := scrollcore.Rect{
			X: int(rf.X*float64(pageW) + 0.5),
			Y: int(rf.Y*float64(pageH) + 0.5),
			W: int(rf.W*float64(pageW) + 0.5),
			H: int(rf.H*float64(pageH) + 0.5),
		}
		w := want[i]
		const tol = 1
		if abs(gotRect.X-w.X) > tol || abs(gotRect.Y-w.Y) > tol || abs(gotRect.W-w.W) > tol || abs(gotRect.H-w.H) > tol {
			t.Errorf("frame %d round-tripped to %v, want ~%v", i, gotRect, w)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestClipToPage(t *testing.T) {
	tests := []struct {
		in   scrollcore.Rect
		w, h int
		want scrollcore.Rect
	}{
		{scrollcore.Rect{X: -5, Y: 0, W: 20, H: 10}, 100, 100, scrollcore.Rect{X: 0, Y: 0, W: 15, H: 10}},
		{scrollcore.Rect{X: 90, Y: 90, W: 20, H: 20}, 100, 100, scrollcore.Rect{X: 90, Y: 90, W: 10, H: 10}},
		{scrollcore.Rect{X: 0, Y: 0, W: 50, H: 50}, 100, 100, scrollcore.Rect{X: 0, Y: 0, W: 50, H: 50}},
	}
	for _, tc := range tests {
		got := ClipToPage(tc.in, tc.w, tc.h)
		if got != tc.want {
			t.Errorf("ClipToPage(%v, %d, %d) = %v, want %v", tc.in, tc.w, tc.h, got, tc.want)
		}
	}
}
