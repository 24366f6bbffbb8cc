package imagesrc

import (
	"archive/zip"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Archive is a zip/cbz comic book, analogous to MComixBook minus its
// worker-thread prefetcher: pages are extracted synchronously on first
// access and cached in memory for the book's lifetime, guarded by a
// mutex since a CLI tool such as comicdiff reads two books concurrently,
// one goroutine per book.
type Archive struct {
	zr    *zip.ReadCloser
	name  string
	files []*zip.File // naturally sorted, image files only

	mu    sync.Mutex
	cache map[int][]byte
}

// OpenArchive opens the zip archive at path and indexes its image
// entries.
func OpenArchive(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("imagesrc: opening archive %s: %w", path, err)
	}

	byName := make(map[string]*zip.File)
	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := filepath.Base(f.Name)
		if !IsImageFile(base) {
			continue
		}
		byName[f.Name] = f
		names = append(names, f.Name)
	}
	sortNatural(names)

	files := make([]*zip.File, len(names))
	for i, n := range names {
		files[i] = byName[n]
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &Archive{zr: zr, name: name, files: files, cache: make(map[int][]byte)}, nil
}

func (a *Archive) Len() int     { return len(a.files) }
func (a *Archive) Name() string { return a.name }

func (a *Archive) FileName(i int) string {
	return filepath.Base(a.files[i].Name)
}

func (a *Archive) ReadPage(i int) ([]byte, error) {
	if i < 0 || i >= len(a.files) {
		return nil, scrollErrIndexOutOfRange(i)
	}

	a.mu.Lock()
	if data, ok := a.cache[i]; ok {
		a.mu.Unlock()
		return data, nil
	}
	a.mu.Unlock()

	rc, err := a.files[i].Open()
	if err != nil {
		return nil, fmt.Errorf("imagesrc: extracting %s: %w", a.files[i].Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("imagesrc: extracting %s: %w", a.files[i].Name, err)
	}

	a.mu.Lock()
	a.cache[i] = data
	a.mu.Unlock()
	return data, nil
}

func (a *Archive) Image(i int) (image.Image, error) {
	data, err := a.ReadPage(i)
	if err != nil {
		return nil, err
	}
	return DecodeImage(a.FileName(i), data)
}

func (a *Archive) Close() error {
	return a.zr.Close()
}
