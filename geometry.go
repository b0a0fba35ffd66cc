package vraster

import (
	"github.com/gogpu/vraster/internal/blend"
	"github.com/gogpu/vraster/internal/geom"
	"github.com/gogpu/vraster/internal/raster"
)

// FillRule selects how a geometry's winding number is converted to
// coverage (spec.md §3, glossary "Fill rule").
type FillRule = raster.FillRule

const (
	// NonZero treats any non-zero winding number as inside the path.
	NonZero = raster.NonZero
	// EvenOdd treats odd winding numbers as inside the path.
	EvenOdd = raster.EvenOdd
)

// Color is a premultiplied RGBA8 color: (r,g,b) are pre-scaled by a/255
// (spec.md §3, glossary "Pre-multiplied RGBA").
type Color = blend.Color

// RGBA32 unpacks a packed 0xAABBGGRR color (as used by the vecimg
// container and the demo CLI) into a premultiplied Color. Channel order in
// the packed word is R,G,B in the low three bytes, A in the high byte,
// matching spec.md §3.
func RGBA32(packed uint32) Color {
	return Color{
		R: uint8(packed),
		G: uint8(packed >> 8),
		B: uint8(packed >> 16),
		A: uint8(packed >> 24),
	}
}

// Geometry is one renderable filled path (spec.md §3): an immutable path
// (tags + points) in the path's own local coordinate space, an affine
// transform TM mapping that space into destination-image coordinates, a
// premultiplied fill color, and a fill rule. PathBounds is the path's own
// local-space bounding box (as returned by Path.Bounds, precomputed by the
// caller so the frame driver need not re-walk every point just to bin
// geometries); [Rasterize] maps it through TM composed with its own global
// matrix to find the geometry's destination-space footprint (spec.md §4.9).
type Geometry struct {
	Path       *geom.Path
	PathBounds geom.FloatRect
	TM         geom.Matrix
	Color      Color
	Rule       FillRule
}

// EffectiveTransform returns the transform that first applies g's own TM,
// then outer — the composition [Rasterize] uses to place this geometry's
// points into destination-image space.
func (g Geometry) EffectiveTransform(outer geom.Matrix) geom.Matrix {
	return g.TM.Multiply(outer)
}
