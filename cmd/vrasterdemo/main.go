// Command vrasterdemo loads a Bvec vector-image file, rasterizes it with
// vraster's full parallel pipeline, and writes the result as a PNG. It is
// the minimal display-layer collaborator spec.md §1 keeps out of the core:
// just enough to exercise the container parser and Rasterize end to end.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/vraster"
	"github.com/gogpu/vraster/internal/geom"
	"github.com/gogpu/vraster/internal/vecimg"
)

func main() {
	var (
		inPath  = flag.String("in", "", "path to a .bvec vector-image file (required)")
		outPath = flag.String("out", "out.png", "path to write the rasterized PNG")
		width   = flag.Int("width", 512, "output image width in pixels")
		height  = flag.Int("height", 512, "output image height in pixels")
		workers = flag.Int("workers", 0, "worker pool size (0 selects GOMAXPROCS)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		vraster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "vrasterdemo: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *width, *height, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "vrasterdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, width, height, workers int) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer f.Close()

	paths, err := vecimg.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inPath, err)
	}

	geometries := make([]vraster.Geometry, len(paths))
	for i, p := range paths {
		path := &geom.Path{Tags: p.Tags, Points: p.Points}
		geometries[i] = vraster.Geometry{
			Path:       path,
			PathBounds: path.Bounds(),
			TM:         geom.IdentityMatrix,
			Color:      vraster.RGBA32(p.Color),
			Rule:       vraster.FillRule(p.FillRule),
		}
	}

	img := vraster.NewImage(width, height)
	pool := vraster.NewPool(workers)
	vraster.Rasterize(geometries, geom.IdentityMatrix, pool, img)

	return writePNG(outPath, img)
}

func writePNG(outPath string, img vraster.Image) error {
	// O_TRUNC avoids leaving trailing bytes from a previous, larger run
	// when overwriting a file with a smaller image (see DESIGN.md).
	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	rgba := &image.RGBA{
		Pix:    unpremultiplyAll(img),
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
	return png.Encode(f, rgba)
}

// unpremultiplyAll converts vraster's premultiplied RGBA8 buffer into the
// straight-alpha layout image/png's RGBA model expects, row by row so
// image stride padding (BytesPerRow > 4*Width) is not carried into the
// PNG's tightly packed buffer.
func unpremultiplyAll(img vraster.Image) []byte {
	out := make([]byte, img.Width*img.Height*4)
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x := 0; x < img.Width; x++ {
			c := row[x]
			i := (y*img.Width + x) * 4
			if c.A == 0 {
				continue
			}
			out[i+0] = unpremultiply(c.R, c.A)
			out[i+1] = unpremultiply(c.G, c.A)
			out[i+2] = unpremultiply(c.B, c.A)
			out[i+3] = c.A
		}
	}
	return out
}

func unpremultiply(c, a uint8) uint8 {
	return uint8(uint32(c) * 255 / uint32(a))
}
