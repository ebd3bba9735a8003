package quadsplit

import (
	"errors"
	"math"
)

// ErrEmptyRegion indicates a region enclosing zero sample pixels was passed
// to ComputeStats. The scheduler never constructs one from a splittable
// parent; hitting this from user code is a caller bug, not a recoverable
// condition.
var ErrEmptyRegion = errors.New("quadsplit: region encloses no pixels")

// Stats holds the flat-color approximation of a region: its mean color and
// a non-uniformity score.
type Stats struct {
	// Avg is the arithmetic mean of each channel over the region's pixels.
	Avg RGB

	// Score is the sum of the per-channel population standard deviations.
	// Score >= 0, with 0 exactly when every sampled pixel is identical.
	Score float64
}

// ComputeStats computes the mean color and non-uniformity score of a region.
//
// The sample window is Region.PixelBounds. The computation is two-pass
// (mean, then deviation), pure, and safe to call concurrently — even on the
// same Pixmap, which is immutable.
//
// A region enclosing zero pixels returns ErrEmptyRegion rather than NaN
// statistics.
func ComputeStats(p *Pixmap, r Region) (Stats, error) {
	x0, y0, x1, y1 := r.PixelBounds()
	if x0 >= x1 || y0 >= y1 {
		return Stats{}, ErrEmptyRegion
	}

	n := float64((x1 - x0) * (y1 - y0))

	var sumR, sumG, sumB float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := p.at(x, y)
			sumR += c.R
			sumG += c.G
			sumB += c.B
		}
	}
	avg := RGB{R: sumR / n, G: sumG / n, B: sumB / n}

	var devR, devG, devB float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := p.at(x, y)
			devR += (c.R - avg.R) * (c.R - avg.R)
			devG += (c.G - avg.G) * (c.G - avg.G)
			devB += (c.B - avg.B) * (c.B - avg.B)
		}
	}
	score := math.Sqrt(devR/n) + math.Sqrt(devG/n) + math.Sqrt(devB/n)

	return Stats{Avg: avg, Score: score}, nil
}
