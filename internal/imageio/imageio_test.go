package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	quadsplit "github.com/nemutas/quadtree-split"
)

// encodePNG builds an in-memory PNG of the given size with a white/black
// vertical split.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if x >= w/2 {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// TestDecode_PNG verifies PNG decoding produces a pixmap with the source's
// dimensions and colors.
func TestDecode_PNG(t *testing.T) {
	data := encodePNG(t, 4, 2)
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Width() != 4 || p.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 4x2", p.Width(), p.Height())
	}
	if p.At(0, 0) != quadsplit.White {
		t.Errorf("At(0,0) = %v, want white", p.At(0, 0))
	}
	if p.At(3, 1) != quadsplit.Black {
		t.Errorf("At(3,1) = %v, want black", p.At(3, 1))
	}
}

// TestDecode_BMP verifies an x/image format decodes through the same path.
func TestDecode_BMP(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}

	p, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Width() != 3 || p.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, want 3x3", p.Width(), p.Height())
	}
	if p.At(1, 1) != quadsplit.Red {
		t.Errorf("At(1,1) = %v, want red", p.At(1, 1))
	}
}

// TestDecode_Garbage verifies undecodable data fails with
// ErrUnsupportedFormat.
func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
}

// TestDecodeScaled verifies oversized sources are downscaled preserving
// aspect ratio and small ones pass through untouched.
func TestDecodeScaled(t *testing.T) {
	tests := []struct {
		name         string
		w, h, maxDim int
		wantW, wantH int
	}{
		{"wide downscaled", 64, 16, 32, 32, 8},
		{"tall downscaled", 16, 64, 32, 8, 32},
		{"small untouched", 16, 8, 32, 16, 8},
		{"scaling disabled", 64, 16, 0, 64, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodePNG(t, tt.w, tt.h)
			p, err := DecodeScaled(bytes.NewReader(data), tt.maxDim)
			if err != nil {
				t.Fatalf("DecodeScaled() error = %v", err)
			}
			if p.Width() != tt.wantW || p.Height() != tt.wantH {
				t.Errorf("dimensions = %dx%d, want %dx%d",
					p.Width(), p.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

// TestLoad verifies loading from a file path.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	if err := os.WriteFile(path, encodePNG(t, 4, 4), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Width() != 4 || p.Height() != 4 {
		t.Errorf("dimensions = %dx%d, want 4x4", p.Width(), p.Height())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Load(missing) did not fail")
	}
}
