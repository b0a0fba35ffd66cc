// Package raster implements the tile-row rasterization core: replaying a
// row's line segments into a sparse cover/area table, converting signed
// area to alpha per fill rule, and emitting composited horizontal spans
// (spec.md §4.8).
package raster

// FillRule selects how winding numbers are converted to coverage.
type FillRule int

const (
	// NonZero: any non-zero winding number is inside.
	NonZero FillRule = iota
	// EvenOdd: odd winding numbers are inside.
	EvenOdd
)

// ApplyFillRule converts a signed area value (scaled by 2*256*256, i.e.
// already shifted so that a full pixel's worth of coverage is 256<<9) into
// an 8-bit alpha, per spec.md §4.8.
func ApplyFillRule(rule FillRule, area int32) uint8 {
	switch rule {
	case EvenOdd:
		m := area >> 9
		if m < 0 {
			m = -m
		}
		m &= 511
		if m > 256 {
			m = 512 - m
		}
		if m > 255 {
			m = 255
		}
		return uint8(m)
	default: // NonZero
		a := area >> 9
		if a < 0 {
			a = -a
		}
		if a > 255 {
			a = 255
		}
		return uint8(a)
	}
}
