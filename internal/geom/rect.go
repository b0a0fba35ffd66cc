package geom

import "math"

// FloatRect is an axis-aligned rectangle in double precision, used for
// geometry bounds before quantization and for clip-bounds comparisons.
type FloatRect struct {
	MinX, MinY, MaxX, MaxY float64
}

// IsEmpty reports whether the rectangle encloses no area.
func (r FloatRect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Intersects reports whether r and o overlap with a non-zero area.
func (r FloatRect) Intersects(o FloatRect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Intersect returns the intersection of r and o. The result may be empty.
func (r FloatRect) Intersect(o FloatRect) FloatRect {
	return FloatRect{
		MinX: math.Max(r.MinX, o.MinX),
		MinY: math.Max(r.MinY, o.MinY),
		MaxX: math.Min(r.MaxX, o.MaxX),
		MaxY: math.Min(r.MaxY, o.MaxY),
	}
}

// IntRect is an axis-aligned integer rectangle in destination-image pixel
// coordinates.
type IntRect struct {
	MinX, MinY, MaxX, MaxY int32
}

// IsEmpty reports whether the rectangle encloses no area.
func (r IntRect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Intersects reports whether r and o overlap with a non-zero area.
func (r IntRect) Intersects(o IntRect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Intersect returns the intersection of r and o. The result may be empty.
func (r IntRect) Intersect(o IntRect) IntRect {
	return IntRect{
		MinX: max32(r.MinX, o.MinX),
		MinY: max32(r.MinY, o.MinY),
		MaxX: min32(r.MaxX, o.MaxX),
		MaxY: min32(r.MaxY, o.MaxY),
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// RoundOut converts a FloatRect to an IntRect that fully encloses it
// (floor the min, ceil the max).
func (r FloatRect) RoundOut() IntRect {
	return IntRect{
		MinX: int32(math.Floor(r.MinX)),
		MinY: int32(math.Floor(r.MinY)),
		MaxX: int32(math.Ceil(r.MaxX)),
		MaxY: int32(math.Ceil(r.MaxY)),
	}
}
