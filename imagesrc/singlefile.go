package imagesrc

import (
	"image"
	"os"
	"path/filepath"
	"strings"
)

// SingleFile wraps one bare image file as a one-page book, analogous to
// SingleFileComicBook.
type SingleFile struct {
	path string
	name string
}

// OpenSingleFile returns a one-page book over the image file at path. It
// does not read or validate the file yet; Image/ReadPage do.
func OpenSingleFile(path string) *SingleFile {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &SingleFile{path: path, name: name}
}

func (s *SingleFile) Len() int              { return 1 }
func (s *SingleFile) Name() string          { return s.name }
func (s *SingleFile) FileName(i int) string { return filepath.Base(s.path) }

func (s *SingleFile) ReadPage(i int) ([]byte, error) {
	if i != 0 {
		return nil, scrollErrIndexOutOfRange(i)
	}
	return os.ReadFile(s.path)
}

func (s *SingleFile) Image(i int) (image.Image, error) {
	data, err := s.ReadPage(i)
	if err != nil {
		return nil, err
	}
	return DecodeImage(s.path, data)
}

func (s *SingleFile) Close() error { return nil }
