// Command quadsplit decomposes images into flat-colored quadtree mosaics.
//
// Each image argument is registered as a named source (its base name); the
// selected source is refined step by step and the resulting partition can be
// written as an SVG, a PNG mosaic, and/or an NDJSON delta log.
package main

import (
	"flag"
	"image"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	quadsplit "github.com/nemutas/quadtree-split"
	"github.com/nemutas/quadtree-split/internal/imageio"
	"github.com/nemutas/quadtree-split/stream"
	"github.com/nemutas/quadtree-split/svgrender"
)

func main() {
	var (
		source   = flag.String("source", "", "source name to refine (default: first image)")
		steps    = flag.Int("steps", 0, "refinement steps to run (0 = run to the fragment budget)")
		maxFrags = flag.Int("max", quadsplit.DefaultMaxFragments, "maximum active fragments")
		maxDim   = flag.Int("maxdim", 0, "downscale sources larger than this dimension (0 = keep full size)")
		parallel = flag.Bool("parallel", false, "compute child statistics in parallel")
		svgOut   = flag.String("svg", "", "write the final partition as SVG")
		pngOut   = flag.String("png", "mosaic.png", "write the final partition as a PNG mosaic")
		jsonOut  = flag.String("ndjson", "", "write the refinement delta log as NDJSON")
		outline  = flag.Bool("outline", false, "stroke fragment borders in the SVG output")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: quadsplit [flags] image.png [more images...]")
	}
	if *verbose {
		quadsplit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	sources := quadsplit.NewSources()
	for _, path := range flag.Args() {
		pm, err := imageio.LoadScaled(path, *maxDim)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", path, err)
		}
		sources.Register(sourceName(path), pm)
	}

	selected := *source
	if selected == "" {
		selected = sources.Names()[0]
	}

	opts := []quadsplit.Option{quadsplit.WithMaxFragments(*maxFrags)}
	if *parallel {
		opts = append(opts, quadsplit.WithParallelStats())
	}
	eng := quadsplit.New(opts...)

	if err := eng.SelectSource(sources, selected); err != nil {
		log.Fatalf("Failed to select source: %v", err)
	}

	var deltas *stream.Writer
	if *jsonOut != "" {
		f, err := os.Create(*jsonOut)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *jsonOut, err)
		}
		defer func() { _ = f.Close() }()
		deltas = stream.NewWriter(f)
		if err := deltas.WriteReset(eng.Fragments()); err != nil {
			log.Fatalf("Failed to write reset record: %v", err)
		}
	}

	ran := 0
	for *steps == 0 || ran < *steps {
		res, err := eng.Step()
		if err != nil {
			log.Fatalf("Step failed: %v", err)
		}
		if !res.Progressed {
			break
		}
		ran++
		if deltas != nil {
			if err := deltas.WriteStep(res); err != nil {
				log.Fatalf("Failed to write step record: %v", err)
			}
		}
	}

	pm, _ := sources.Lookup(selected)
	frags := eng.Fragments()

	if *svgOut != "" {
		f, err := os.Create(*svgOut)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *svgOut, err)
		}
		var svgOpts []svgrender.Option
		if *outline {
			svgOpts = append(svgOpts, svgrender.WithOutline("black"))
		}
		svgrender.Write(f, pm.Width(), pm.Height(), frags, svgOpts...)
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to write %s: %v", *svgOut, err)
		}
	}

	if *pngOut != "" {
		if err := saveMosaic(*pngOut, pm.Width(), pm.Height(), frags); err != nil {
			log.Fatalf("Failed to save mosaic: %v", err)
		}
	}

	log.Printf("Refined %q: %d steps, %d fragments", selected, ran, len(frags))
}

// sourceName derives a registry name from a file path: base name without
// extension.
func sourceName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// saveMosaic fills each fragment's sample window with its average color and
// writes the result as PNG.
func saveMosaic(path string, width, height int, frags []quadsplit.Fragment) error {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, f := range frags {
		x0, y0, x1, y1 := f.Region.PixelBounds()
		draw.Draw(img, image.Rect(x0, y0, x1, y1),
			image.NewUniform(f.Stats.Avg.Color()), image.Point{}, draw.Src)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
