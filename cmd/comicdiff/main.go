// comicdiff compares two comic books (directory, single image, or
// zip/cbz archive) and reports whether they differ in name, size, page
// count, or per-page resolution.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mcomix-go/scrollcore/imagesrc"
	"github.com/mcomix-go/scrollcore/internal/cliutil"
)

// errUsage signals a command-line usage mistake (wrong argument count),
// which exits 2, as opposed to a runtime failure opening or reading a
// comic, which exits 1.
var errUsage = errors.New("comicdiff: expected exactly two comic paths")

type pageInfo struct {
	name   string
	format string
	width  int
	height int
}

type comicInfo struct {
	path   string
	name   string
	format string
	size   int64
	pages  []pageInfo
}

func main() {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "comicdiff COMIC1 COMIC2",
		Short:         "Compare two comic books",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			differs, err := run(args[0], args[1], verbose)
			if err != nil {
				return err
			}
			if differs {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every difference found, not just a summary")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "comicdiff:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(path1, path2 string, verbose bool) (differs bool, err error) {
	log := cliutil.NewLogger(verbose)

	var wg sync.WaitGroup
	infos := make([]*comicInfo, 2)
	errs := make([]error, 2)
	paths := [2]string{path1, path2}
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			infos[i], errs[i] = loadComicInfo(paths[i])
		}(i)
	}
	wg.Wait()
	if errs[0] != nil {
		return false, errs[0]
	}
	if errs[1] != nil {
		return false, errs[1]
	}
	c1, c2 := infos[0], infos[1]

	diffCount := 0
	report := func(name string, a, b any) {
		diffCount++
		if verbose {
			log.Info().Str("field", name).Interface("comic1", a).Interface("comic2", b).Msg("differs")
		}
	}

	if c1.name != c2.name {
		report("name", c1.name, c2.name)
	}
	if c1.format != c2.format {
		report("format", c1.format, c2.format)
	}
	if c1.size != c2.size {
		report("size", c1.size, c2.size)
	}
	if len(c1.pages) != len(c2.pages) {
		report("length", len(c1.pages), len(c2.pages))
	}

	numCommon := min(len(c1.pages), len(c2.pages))
	numPageDiffs := 0
	lowerRes, higherRes := true, true
	for n := 0; n < numCommon; n++ {
		p1, p2 := c1.pages[n], c2.pages[n]
		if p1 != p2 {
			numPageDiffs++
		}
		if p1.name != p2.name && verbose {
			log.Info().Int("page", n).Str("name1", p1.name).Str("name2", p2.name).Msg("page name differs")
		}
		if p1.width != p2.width || p1.height != p2.height {
			w1GEw2 := p1.width >= p2.width && p1.height >= p2.height
			w1LEw2 := p1.width <= p2.width && p1.height <= p2.height
			switch {
			case w1GEw2:
				lowerRes = false
			case w1LEw2:
				higherRes = false
			default:
				if verbose {
					log.Info().Int("page", n).
						Str("width", fmt.Sprintf("%d vs %d", p1.width, p2.width)).
						Str("height", fmt.Sprintf("%d vs %d", p1.height, p2.height)).
						Msg("resolution differs, not monotonically")
				}
			}
		}
	}
	if numPageDiffs != 0 {
		diffCount++
		log.Info().Int("different_pages", numPageDiffs).Int("common_pages", numCommon).Msg("page diffs")
	}
	if numCommon > 0 && lowerRes != higherRes {
		diffCount++
		w1, h1 := averageResolution(c1.pages[:numCommon])
		w2, h2 := averageResolution(c2.pages[:numCommon])
		log.Info().Str("comic1", fmt.Sprintf("~%dx%d", w1, h1)).Str("comic2", fmt.Sprintf("~%dx%d", w2, h2)).
			Bool("comic1_lower", lowerRes).Msg("overall resolution differs")
	}

	return diffCount != 0, nil
}

func averageResolution(pages []pageInfo) (w, h int) {
	var sw, sh int
	for _, p := range pages {
		sw += p.width
		sh += p.height
	}
	return sw / len(pages), sh / len(pages)
}

func loadComicInfo(path string) (*comicInfo, error) {
	book, err := imagesrc.Open(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	pages := make([]pageInfo, book.Len())
	for n := 0; n < book.Len(); n++ {
		name := book.FileName(n)
		img, err := book.Image(n)
		if err != nil {
			return nil, fmt.Errorf("%s: page %d: %w", path, n, err)
		}
		b := img.Bounds()
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		pages[n] = pageInfo{name: name, format: ext, width: b.Dx(), height: b.Dy()}
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	format := archiveFormat(path, stat)

	return &comicInfo{path: path, name: name, format: format, size: stat.Size(), pages: pages}, nil
}

// archiveFormat reports a human label for path's container kind, covering
// only the kinds imagesrc itself supports.
func archiveFormat(path string, stat os.FileInfo) string {
	if stat.IsDir() {
		return "directory"
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "cbz", "zip":
		return "zip"
	default:
		return "image"
	}
}
