package geom

import "math"

// Complexity classifies a Matrix by fuzzy comparison of its entries against
// 0 and 1, and drives fast paths in the linearizer's point-quantization step
// (spec.md §4.2).
type Complexity int

const (
	// Identity: no scale, rotation, skew, or translation.
	Identity Complexity = iota
	// TranslationOnly: only M31/M32 differ from identity.
	TranslationOnly
	// ScaleOnly: only the diagonal differs from identity (axis-aligned scale,
	// no translation).
	ScaleOnly
	// TranslationScale: axis-aligned scale plus translation.
	TranslationScale
	// Complex: general affine transform (rotation, skew, or a combination).
	Complex
)

const fuzzyEpsilon = 1e-9

func fuzzyZero(v float64) bool { return math.Abs(v) < fuzzyEpsilon }
func fuzzyOne(v float64) bool  { return math.Abs(v-1) < fuzzyEpsilon }

// Matrix is a 3x2 affine transform stored row-major:
//
//	| M11 M12 |
//	| M21 M22 |
//	| M31 M32 |
//
// mapping (x, y) to (M11*x + M21*y + M31, M12*x + M22*y + M32). The implicit
// third column is always [0, 0, 1].
type Matrix struct {
	M11, M12 float64
	M21, M22 float64
	M31, M32 float64
}

// IdentityMatrix is the identity transform.
var IdentityMatrix = Matrix{M11: 1, M22: 1}

// Translation returns a pure translation matrix.
func Translation(tx, ty float64) Matrix {
	return Matrix{M11: 1, M22: 1, M31: tx, M32: ty}
}

// ScaleBy returns a pure axis-aligned scale matrix.
func ScaleBy(sx, sy float64) Matrix {
	return Matrix{M11: sx, M22: sy}
}

// Skew returns a skew matrix with the given X/Y skew factors.
func Skew(skewX, skewY float64) Matrix {
	return Matrix{M11: 1, M12: skewY, M21: skewX, M22: 1}
}

// RotationDegrees returns a rotation matrix. Multiples of 90 degrees produce
// exact (not merely close-to) 0/1/-1 entries, matching spec.md §4.2.
func RotationDegrees(degrees float64) Matrix {
	norm := math.Mod(degrees, 360)
	if norm < 0 {
		norm += 360
	}
	switch norm {
	case 0:
		return IdentityMatrix
	case 90:
		return Matrix{M12: 1, M21: -1}
	case 180:
		return Matrix{M11: -1, M22: -1}
	case 270:
		return Matrix{M12: -1, M21: 1}
	}
	rad := degrees * math.Pi / 180
	s, c := math.Sin(rad), math.Cos(rad)
	return Matrix{M11: c, M12: s, M21: -s, M22: c}
}

// Multiply returns m * other, i.e. the transform that first applies m, then
// other (post-multiplication in the "apply m's effect first" sense used
// throughout the linearizer: m.Multiply(other).MapPoint(p) == other.MapPoint(m.MapPoint(p))).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		M11: m.M11*other.M11 + m.M12*other.M21,
		M12: m.M11*other.M12 + m.M12*other.M22,
		M21: m.M21*other.M11 + m.M22*other.M21,
		M22: m.M21*other.M12 + m.M22*other.M22,
		M31: m.M31*other.M11 + m.M32*other.M21 + other.M31,
		M32: m.M31*other.M12 + m.M32*other.M22 + other.M32,
	}
}

// PreMultiply returns other * m (other applied first).
func (m Matrix) PreMultiply(other Matrix) Matrix {
	return other.Multiply(m)
}

// Determinant returns M11*M22 - M12*M21.
func (m Matrix) Determinant() float64 {
	return m.M11*m.M22 - m.M12*m.M21
}

// Invert returns the inverse of m. If the determinant is fuzzily zero, the
// identity matrix is returned instead (spec.md §4.2's documented fallback).
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if fuzzyZero(det) {
		return IdentityMatrix
	}
	inv := 1 / det
	m11 := m.M22 * inv
	m12 := -m.M12 * inv
	m21 := -m.M21 * inv
	m22 := m.M11 * inv
	return Matrix{
		M11: m11, M12: m12,
		M21: m21, M22: m22,
		M31: -(m.M31*m11 + m.M32*m21),
		M32: -(m.M31*m12 + m.M32*m22),
	}
}

// MapPoint applies the transform to a point.
func (m Matrix) MapPoint(p Point) Point {
	return Point{
		X: m.M11*p.X + m.M21*p.Y + m.M31,
		Y: m.M12*p.X + m.M22*p.Y + m.M32,
	}
}

// MapRect returns the axis-aligned bounding box of the four mapped corners
// of r.
func (m Matrix) MapRect(r FloatRect) FloatRect {
	corners := [4]Point{
		{r.MinX, r.MinY}, {r.MaxX, r.MinY},
		{r.MaxX, r.MaxY}, {r.MinX, r.MaxY},
	}
	out := FloatRect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, c := range corners {
		mp := m.MapPoint(c)
		out.MinX = math.Min(out.MinX, mp.X)
		out.MinY = math.Min(out.MinY, mp.Y)
		out.MaxX = math.Max(out.MaxX, mp.X)
		out.MaxY = math.Max(out.MaxY, mp.Y)
	}
	return out
}

// Lerp linearly interpolates each of the six entries between m1 and m2.
func Lerp(m1, m2 Matrix, t float64) Matrix {
	l := func(a, b float64) float64 { return a + (b-a)*t }
	return Matrix{
		M11: l(m1.M11, m2.M11), M12: l(m1.M12, m2.M12),
		M21: l(m1.M21, m2.M21), M22: l(m1.M22, m2.M22),
		M31: l(m1.M31, m2.M31), M32: l(m1.M32, m2.M32),
	}
}

// ComplexityOf classifies m by fuzzy comparison of its six entries against
// 0/1, per spec.md §4.2.
func (m Matrix) ComplexityOf() Complexity {
	diagonalOnly := fuzzyZero(m.M12) && fuzzyZero(m.M21)
	noTranslation := fuzzyZero(m.M31) && fuzzyZero(m.M32)
	unitScale := fuzzyOne(m.M11) && fuzzyOne(m.M22)

	switch {
	case diagonalOnly && unitScale && noTranslation:
		return Identity
	case diagonalOnly && unitScale:
		return TranslationOnly
	case diagonalOnly && noTranslation:
		return ScaleOnly
	case diagonalOnly:
		return TranslationScale
	default:
		return Complex
	}
}
