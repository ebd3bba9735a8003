package quadsplit

import (
	"math"
)

// Region is an axis-aligned rectangle in pixel-buffer coordinates.
// Boundaries are real-valued: repeated halving produces fractional edges,
// which keeps cumulative rounding error from compounding across generations
// of splitting. A Region is an immutable value; subdivision produces new
// child regions and never mutates the parent.
type Region struct {
	Left, Top, Right, Bottom float64
}

// Width returns Right - Left.
func (r Region) Width() float64 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r Region) Height() float64 {
	return r.Bottom - r.Top
}

// Area returns the real-valued area of the region.
func (r Region) Area() float64 {
	return r.Width() * r.Height()
}

// Valid reports whether the region has positive extent on both axes.
func (r Region) Valid() bool {
	return r.Left < r.Right && r.Top < r.Bottom
}

// Split subdivides the region into its four equal-area quadrants, in the
// order top-left, top-right, bottom-left, bottom-right. The order is part of
// the contract: consumers map child index to position.
//
// Midpoints are real-valued, not truncated to integers. Any valid region
// yields four valid children; children narrower than one pixel may enclose
// no sample pixels, which ComputeStats reports as ErrEmptyRegion.
func (r Region) Split() [4]Region {
	midX := (r.Left + r.Right) / 2
	midY := (r.Top + r.Bottom) / 2
	return [4]Region{
		{Left: r.Left, Top: r.Top, Right: midX, Bottom: midY},
		{Left: midX, Top: r.Top, Right: r.Right, Bottom: midY},
		{Left: r.Left, Top: midY, Right: midX, Bottom: r.Bottom},
		{Left: midX, Top: midY, Right: r.Right, Bottom: r.Bottom},
	}
}

// PixelBounds returns the integer sample window [x0, x1) × [y0, y1) enclosed
// by the region: ceil on the lower bounds AND ceil on the upper bounds.
//
// Rounding the upper bound with ceil instead of floor, combined with
// real-valued split midpoints, guarantees sibling windows tile their
// parent's window exactly: the left child ends at ceil(mid) and the right
// child starts there, so every pixel is sampled by exactly one sibling.
func (r Region) PixelBounds() (x0, y0, x1, y1 int) {
	x0 = int(math.Ceil(r.Left))
	y0 = int(math.Ceil(r.Top))
	x1 = int(math.Ceil(r.Right))
	y1 = int(math.Ceil(r.Bottom))
	return x0, y0, x1, y1
}

// PixelCount returns the number of sample pixels enclosed by the region.
func (r Region) PixelCount() int {
	x0, y0, x1, y1 := r.PixelBounds()
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}
