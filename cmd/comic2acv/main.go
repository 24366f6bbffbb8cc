// comic2acv converts a comic book (directory, single image, or zip/cbz
// archive) into an ACV archive: the page images plus an acv.xml index of
// each page's estimated background color and segmented panel rectangles.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/mcomix-go/scrollcore"
	"github.com/mcomix-go/scrollcore/acv"
	"github.com/mcomix-go/scrollcore/imagesrc"
	"github.com/mcomix-go/scrollcore/internal/cliutil"
	"github.com/mcomix-go/scrollcore/overlay"
)

var errNoPages = errors.New("comic2acv: comic has no pages")

var displayPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

type options struct {
	display            string
	downscale          int
	output             string
	preview            string
	verbose            bool
	displayW, displayH int
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "comic2acv [flags] COMIC",
		Short:         "Convert a comic book into an ACV archive",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.display, "display", "d", "", "target view size WIDTHxHEIGHT (controls row merging)")
	cmd.Flags().IntVarP(&opts.downscale, "downscale", "D", 0, "downscale page images to fit under SIZExSIZE")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&opts.preview, "preview", "p", "", "also write per-page overlay images to this directory")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "comic2acv:", err)
		if errors.Is(err, errNoPages) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(opts *options, comicPath string) error {
	log := cliutil.NewLogger(opts.verbose)

	if opts.display != "" {
		m := displayPattern.FindStringSubmatch(opts.display)
		if m == nil {
			return fmt.Errorf("invalid --display value %q, want WIDTHxHEIGHT", opts.display)
		}
		opts.displayW, _ = strconv.Atoi(m[1])
		opts.displayH, _ = strconv.Atoi(m[2])
	}

	if opts.output == "" {
		ext := filepath.Ext(comicPath)
		opts.output = strings.TrimSuffix(comicPath, ext) + ".acv"
	}
	if _, err := os.Stat(opts.output); err == nil {
		return fmt.Errorf("output already exists: %s", opts.output)
	} else if !os.IsNotExist(err) {
		return err
	}

	book, err := imagesrc.Open(comicPath)
	if err != nil {
		return err
	}
	defer book.Close()

	if book.Len() == 0 {
		return fmt.Errorf("%w: %s", errNoPages, comicPath)
	}

	pages := make([]acv.PageImage, 0, book.Len())
	for n := 0; n < book.Len(); n++ {
		log.Info().Int("page", n).Str("name", book.FileName(n)).Msg("processing page")

		img, err := book.Image(n)
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}

		if opts.downscale > 0 {
			img = downscale(img, opts.downscale)
		}

		bg, err := scrollcore.EstimateBackground(img, 0)
		if err != nil {
			return fmt.Errorf("page %d: estimating background: %w", n, err)
		}

		orch := scrollcore.NewOrchestrator(log)
		if err := orch.SetupImage(img, bg); err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		if opts.displayW > 0 && opts.displayH > 0 {
			orch.SetupView(uint32(opts.displayW), uint32(opts.displayH))
		}

		pageW, pageH := orch.ImageSize()
		manifest, err := acv.BuildPageManifest(orch, n, bg, pageW, pageH)
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}

		data, err := encodePNG(img)
		if err != nil {
			return fmt.Errorf("page %d: encoding: %w", n, err)
		}

		if opts.preview != "" {
			if err := writePreview(opts.preview, n, img, orch.Frames()); err != nil {
				return fmt.Errorf("page %d: %w", n, err)
			}
		}

		pages = append(pages, acv.PageImage{
			Manifest: manifest,
			Filename: fmt.Sprintf("%04d.png", n),
			Data:     data,
		})
	}

	log.Info().Str("output", opts.output).Msg("creating archive")
	return acv.WriteManifest(opts.output, nil, pages)
}

func downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= maxSize && height <= maxSize {
		return img
	}
	if width > maxSize {
		height = height * maxSize / width
		width = maxSize
	}
	if height > maxSize {
		width = width * maxSize / height
		height = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// writePreview writes a copy of the page with every detected frame
// outlined, for eyeballing segmentation quality without a viewer.
func writePreview(dir string, n int, img image.Image, frames []scrollcore.Frame) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)

	r := overlay.NewRenderer(b.Dx(), b.Dy())
	r.DrawFrames(dst, frames, overlay.DefaultFrameStyle)

	data, err := encodePNG(dst)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fmt.Sprintf("%04d-frames.png", n)), data, 0o644)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
