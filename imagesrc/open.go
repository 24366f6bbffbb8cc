package imagesrc

import (
	"fmt"
	"os"
)

// Open inspects path and returns the matching ComicBook implementation: a
// Dir for a directory, an Archive for a file that starts with the zip
// signature (such as a .zip or .cbz), or a SingleFile for any other
// (presumed image) file. Other archive formats (rar, 7z, tar) are not
// supported.
func Open(path string) (ComicBook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("imagesrc: %s: %w", path, err)
	}
	if info.IsDir() {
		return OpenDir(path)
	}
	if isZip(path) {
		return OpenArchive(path)
	}
	return OpenSingleFile(path), nil
}

func isZip(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	var magic [4]byte
	if _, err := f.Read(magic[:]); err != nil {
		return false
	}
	return magic[0] == 'P' && magic[1] == 'K'
}
