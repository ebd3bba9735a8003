// Package quadsplit progressively decomposes a raster image into a hierarchy
// of rectangular regions, each approximated by a single average color.
//
// # Overview
//
// quadsplit is a greedy, anytime approximation engine: it maintains a set of
// active fragments that exactly partition the image, and on each step splits
// the fragment whose flat-color approximation fits worst. The decomposition
// is exposed as an ordered stream of refinement deltas (one fragment removed,
// four added) suitable for incremental rendering by a consumer.
//
// # Quick Start
//
//	import quadsplit "github.com/nemutas/quadtree-split"
//
//	pm := quadsplit.FromImage(img)
//
//	eng := quadsplit.New(quadsplit.WithMaxFragments(2000))
//	if err := eng.Reset(pm); err != nil {
//		log.Fatal(err)
//	}
//
//	for {
//		res, err := eng.Step()
//		if err != nil || !res.Progressed {
//			break
//		}
//		// res.Removed / res.Added drive an incremental renderer.
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Pixmap, Region, Stats, Fragment, Sources
//   - internal/imageio: decoding image files into Pixmaps
//   - stream: NDJSON encoding of refinement deltas
//   - svgrender: rendering a fragment snapshot to SVG
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right, Y increases down
//   - Region boundaries are real-valued; pixel sampling rounds with ceil on
//     both bounds (see Region.PixelBounds)
//
// # Concurrency
//
// A Pixmap is immutable after construction and safe for concurrent reads.
// An Engine is single-owner: Reset, Step, and SelectSource must not be
// invoked concurrently. Statistics computation for a step's four children
// can be parallelized with WithParallelStats.
package quadsplit

// Version is the current version of the library.
const Version = "0.1.0"
