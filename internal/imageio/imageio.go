// Package imageio decodes image files into quadsplit Pixmaps.
//
// Supported formats: PNG, JPEG, GIF (standard library) plus BMP, TIFF, and
// WebP via golang.org/x/image. Oversized sources can be downscaled at load
// time so early refinement steps stay cheap.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"

	quadsplit "github.com/nemutas/quadtree-split"
)

// ErrUnsupportedFormat is returned when the image format is not supported.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// Load loads an image from the given file path, auto-detecting the format.
func Load(path string) (*quadsplit.Pixmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadScaled loads an image and downscales it so that neither dimension
// exceeds maxDim. maxDim <= 0 disables scaling.
func LoadScaled(path string, maxDim int) (*quadsplit.Pixmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeScaled(f, maxDim)
}

// Decode decodes an image from r, auto-detecting the format from its
// content.
func Decode(r io.Reader) (*quadsplit.Pixmap, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	quadsplit.Logger().Debug("imageio: decoded", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return quadsplit.FromImage(img), nil
}

// DecodeScaled decodes an image from r and downscales it so that neither
// dimension exceeds maxDim. maxDim <= 0 disables scaling.
func DecodeScaled(r io.Reader, maxDim int) (*quadsplit.Pixmap, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	b := img.Bounds()
	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		scaled := downscale(img, maxDim)
		quadsplit.Logger().Warn("imageio: source downscaled",
			"format", format,
			"from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
			"to", fmt.Sprintf("%dx%d", scaled.Bounds().Dx(), scaled.Bounds().Dy()))
		img = scaled
	}
	return quadsplit.FromImage(img), nil
}

// downscale resizes img so its larger dimension equals maxDim, preserving
// aspect ratio. Uses approximate bi-linear interpolation: the engine
// averages regions anyway, so resampling quality is not critical.
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var tw, th int
	if w >= h {
		tw = maxDim
		th = h * maxDim / w
	} else {
		th = maxDim
		tw = w * maxDim / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
