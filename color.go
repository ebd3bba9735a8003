package quadsplit

import (
	"fmt"
	"image/color"
)

// RGB represents a color with red, green, and blue components.
// Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: 255,
	}
}

// Hex returns the color as a "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp255(c.R*255)),
		uint8(clamp255(c.G*255)),
		uint8(clamp255(c.B*255)))
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// NewRGB creates a color from RGB components.
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// Lerp performs linear interpolation between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black = NewRGB(0, 0, 0)
	White = NewRGB(1, 1, 1)
	Red   = NewRGB(1, 0, 0)
	Green = NewRGB(0, 1, 0)
	Blue  = NewRGB(0, 0, 1)
)
