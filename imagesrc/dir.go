package imagesrc

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// Dir is a directory of loose page image files, analogous to
// DirComicBook.
type Dir struct {
	root  string
	name  string
	files []string // base names, naturally sorted
}

// OpenDir lists path's image files and returns a Dir book over them.
func OpenDir(path string) (*Dir, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("imagesrc: reading directory %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImageFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sortNatural(files)
	return &Dir{root: path, name: filepath.Base(filepath.Clean(path)), files: files}, nil
}

func (d *Dir) Len() int              { return len(d.files) }
func (d *Dir) Name() string          { return d.name }
func (d *Dir) FileName(i int) string { return d.files[i] }

func (d *Dir) ReadPage(i int) ([]byte, error) {
	if i < 0 || i >= len(d.files) {
		return nil, scrollErrIndexOutOfRange(i)
	}
	return os.ReadFile(filepath.Join(d.root, d.files[i]))
}

func (d *Dir) Image(i int) (image.Image, error) {
	data, err := d.ReadPage(i)
	if err != nil {
		return nil, err
	}
	return DecodeImage(d.files[i], data)
}

func (d *Dir) Close() error { return nil }
