// Package svgrender renders a fragment partition as flat-colored SVG
// rectangles. It is a minimal visual-mapping consumer of the engine's
// snapshot interface; hosts with richer mappings (extrusion, hue shifts)
// implement their own from the same fields.
package svgrender

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	quadsplit "github.com/nemutas/quadtree-split"
)

// Option configures rendering.
type Option func(*renderOptions)

type renderOptions struct {
	outline string
}

// WithOutline strokes each fragment with the given CSS color, making the
// subdivision structure visible over the flat fills.
func WithOutline(color string) Option {
	return func(o *renderOptions) {
		o.outline = color
	}
}

// Write emits an SVG document of the given pixel dimensions containing one
// rect per fragment, filled with the fragment's average color.
//
// Fragment boundaries are real-valued; rects are rounded to the nearest
// integer pixel, which is lossless for the common power-of-two dimensions
// and visually negligible otherwise.
func Write(w io.Writer, width, height int, frags []quadsplit.Fragment, opts ...Option) {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	for _, f := range frags {
		x := int(math.Round(f.Region.Left))
		y := int(math.Round(f.Region.Top))
		rw := int(math.Round(f.Region.Right)) - x
		rh := int(math.Round(f.Region.Bottom)) - y
		if rw < 1 {
			rw = 1
		}
		if rh < 1 {
			rh = 1
		}

		style := "fill:" + f.Stats.Avg.Hex()
		if o.outline != "" {
			style += fmt.Sprintf(";stroke:%s;stroke-width:1", o.outline)
		}
		canvas.Rect(x, y, rw, rh, style)
	}
	canvas.End()
}
