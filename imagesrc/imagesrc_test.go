package imagesrc

import (
	"archive/zip"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestNaturalLess(t *testing.T) {
	cases := []struct{ a, b string; want bool }{
		{"page2.png", "page10.png", true},
		{"page10.png", "page2.png", false},
		{"a.png", "b.png", true},
		{"page1.png", "page1.png", false},
	}
	for _, tc := range cases {
		if got := naturalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDirListsAndSortsImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "page10.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "page2.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatal(err)
	}

	book, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	defer book.Close()

	if book.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", book.Len())
	}
	if book.FileName(0) != "page2.png" || book.FileName(1) != "page10.png" {
		t.Errorf("unexpected order: %s, %s", book.FileName(0), book.FileName(1))
	}

	img, err := book.Image(0)
	if err != nil {
		t.Fatalf("Image(0): %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.png")
	writePNG(t, path, 8, 6)

	book := OpenSingleFile(path)
	defer book.Close()
	if book.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", book.Len())
	}
	if book.Name() != "cover" {
		t.Errorf("Name() = %q, want cover", book.Name())
	}
	if _, err := book.Image(0); err != nil {
		t.Fatalf("Image(0): %v", err)
	}
	if _, err := book.ReadPage(1); err == nil {
		t.Fatal("expected out-of-range error for page 1")
	}
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "book.cbz")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, name := range []string{"002.png", "001.png"} {
		img := image.NewRGBA(image.Rect(0, 0, 3, 3))
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(w, img); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	book, err := OpenArchive(archivePath)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer book.Close()

	if book.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", book.Len())
	}
	if book.FileName(0) != "001.png" {
		t.Errorf("FileName(0) = %q, want 001.png", book.FileName(0))
	}

	data1, err := book.ReadPage(0)
	if err != nil {
		t.Fatalf("ReadPage(0): %v", err)
	}
	data2, err := book.ReadPage(0)
	if err != nil {
		t.Fatalf("ReadPage(0) cached: %v", err)
	}
	if len(data1) != len(data2) {
		t.Errorf("cached read returned different length")
	}
}

func TestOpenDispatchesByKind(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "p.png"), 4, 4)

	book, err := Open(dir)
	if err != nil {
		t.Fatalf("Open(dir): %v", err)
	}
	if _, ok := book.(*Dir); !ok {
		t.Errorf("Open(dir) = %T, want *Dir", book)
	}
	book.Close()

	filePath := filepath.Join(dir, "p.png")
	book2, err := Open(filePath)
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if _, ok := book2.(*SingleFile); !ok {
		t.Errorf("Open(file) = %T, want *SingleFile", book2)
	}
	book2.Close()
}

func TestDecodeImageRejectsUnsupportedFormat(t *testing.T) {
	if _, err := DecodeImage("page.pbm", []byte("P1\n1 1\n0\n")); err == nil {
		t.Fatal("expected error for .pbm")
	}
}
