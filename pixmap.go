package quadsplit

import (
	"image"
)

// Pixmap represents a rectangular pixel buffer of RGB samples, each channel
// normalized to [0, 1].
//
// A Pixmap is immutable once built: every accessor is read-only and the
// buffer can be shared freely across goroutines. This is what allows the
// statistics calculator to read disjoint regions concurrently.
type Pixmap struct {
	width  int
	height int
	pix    []float64 // RGB format, 3 floats per pixel
}

// FromImage converts a decoded image into a Pixmap.
// Alpha is dropped; callers wanting matte compositing should flatten first.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := &Pixmap{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]float64, b.Dx()*b.Dy()*3),
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := FromColor(img.At(x, y))
			p.pix[i+0] = c.R
			p.pix[i+1] = c.G
			p.pix[i+2] = c.B
			i += 3
		}
	}
	return p
}

// NewPixmap builds a Pixmap from a row-major slice of samples.
// len(samples) must be width*height; samples outside [0, 1] are kept as-is.
// Intended for tests and synthetic sources.
func NewPixmap(width, height int, samples []RGB) *Pixmap {
	if len(samples) != width*height {
		panic("quadsplit: sample count does not match dimensions")
	}
	p := &Pixmap{
		width:  width,
		height: height,
		pix:    make([]float64, width*height*3),
	}
	for i, c := range samples {
		p.pix[i*3+0] = c.R
		p.pix[i*3+1] = c.G
		p.pix[i*3+2] = c.B
	}
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// At returns the color of a single pixel.
// Out-of-bounds coordinates return Black.
func (p *Pixmap) At(x, y int) RGB {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Black
	}
	return p.at(x, y)
}

// at is the unchecked fast path used by the statistics calculator, which
// iterates strictly inside the buffer.
func (p *Pixmap) at(x, y int) RGB {
	i := (y*p.width + x) * 3
	return RGB{R: p.pix[i+0], G: p.pix[i+1], B: p.pix[i+2]}
}

// Bounds returns the full-image region covering the whole pixmap.
func (p *Pixmap) Bounds() Region {
	return Region{Left: 0, Top: 0, Right: float64(p.width), Bottom: float64(p.height)}
}
