package curve

import (
	"math"

	"github.com/gogpu/vraster/internal/geom"
)

// QuadPoints is a quadratic Bezier's three control points: start, control,
// end.
type QuadPoints [3]geom.Point

// CubicPoints is a cubic Bezier's four control points: start, control1,
// control2, end.
type CubicPoints [4]geom.Point

// quadDerivCoeffs returns the a, b coefficients of d/dt (divided by 2) of
// one coordinate (X or Y) of a quadratic Bezier, i.e. the root of a*t + b
// is the curve's extremum along that axis.
func quadDerivCoeffs(p0, p1, p2 float64) (a, b float64) {
	// B(t) = (1-t)^2 p0 + 2(1-t)t p1 + t^2 p2
	// B'(t) = 2(1-t)(p1-p0) + 2t(p2-p1) = 2[(p2-2p1+p0)t + (p1-p0)]
	a = p2 - 2*p1 + p0
	b = p1 - p0
	return a, b
}

// quadExtremaT returns the interior roots of B'(t)=0 for one axis of a
// quadratic curve.
func quadExtremaT(p0, p1, p2 float64) []float64 {
	a, b := quadDerivCoeffs(p0, p1, p2)
	if fuzzyEqual(a, 0) {
		return nil
	}
	t := -b / a
	return InteriorRoots([]float64{t})
}

// SplitQuadAtY splits q at its interior Y-extremum, returning 1-2 monotonic
// sub-curves that share end/start points. At the split point the Y
// coordinate of the control points on either side is forced equal to the
// split point's Y (it already is, by construction of De Casteljau
// subdivision, but floating point can drift by an ULP; spec.md §4.1 calls
// out forcing equality explicitly).
func SplitQuadAtY(q QuadPoints) []QuadPoints {
	ts := quadExtremaT(q[0].Y, q[1].Y, q[2].Y)
	parts := splitQuadAt(q, ts)
	for i := 0; i+1 < len(parts); i++ {
		y := parts[i][2].Y
		parts[i][1].Y = y
		parts[i+1][1].Y = y
	}
	return parts
}

// SplitQuadAtX is the X-axis analogue of SplitQuadAtY.
func SplitQuadAtX(q QuadPoints) []QuadPoints {
	ts := quadExtremaT(q[0].X, q[1].X, q[2].X)
	parts := splitQuadAt(q, ts)
	for i := 0; i+1 < len(parts); i++ {
		x := parts[i][2].X
		parts[i][1].X = x
		parts[i+1][1].X = x
	}
	return parts
}

func splitQuadAt(q QuadPoints, ts []float64) []QuadPoints {
	if len(ts) == 0 {
		return []QuadPoints{q}
	}
	out := make([]QuadPoints, 0, len(ts)+1)
	remaining := q
	prevT := 0.0
	for _, t := range ts {
		localT := (t - prevT) / (1 - prevT)
		left, right := subdivideQuad(remaining, localT)
		out = append(out, left)
		remaining = right
		prevT = t
	}
	out = append(out, remaining)
	return out
}

func subdivideQuad(q QuadPoints, t float64) (left, right QuadPoints) {
	p01 := q[0].Lerp(q[1], t)
	p12 := q[1].Lerp(q[2], t)
	p012 := p01.Lerp(p12, t)
	left = QuadPoints{q[0], p01, p012}
	right = QuadPoints{p012, p12, q[2]}
	return left, right
}

// cubicDerivCoeffs returns a, b, c such that the roots of a*t^2+b*t+c=0 are
// the extrema of one coordinate of a cubic Bezier.
func cubicDerivCoeffs(p0, p1, p2, p3 float64) (a, b, c float64) {
	// B'(t)/3 = (1-t)^2 (p1-p0) + 2(1-t)t (p2-p1) + t^2 (p3-p2)
	a = -p0 + 3*p1 - 3*p2 + p3
	b = 2 * (p0 - 2*p1 + p2)
	c = p1 - p0
	return a, b, c
}

// FindCubicExtrema returns the interior roots (excluding 0 and 1, per
// spec.md §9) of one coordinate's derivative. It calls QuadraticRoots
// directly on the derivative's coefficients, matching the original's
// FindCubicExtrema convention.
func FindCubicExtrema(p0, p1, p2, p3 float64) []float64 {
	a, b, c := cubicDerivCoeffs(p0, p1, p2, p3)
	roots := QuadraticRoots(a, b, c)
	return InteriorRoots(roots)
}

// SplitCubicAtY splits c at its interior Y-extrema into 1-3 monotonic
// sub-curves.
func SplitCubicAtY(c CubicPoints) []CubicPoints {
	ts := FindCubicExtrema(c[0].Y, c[1].Y, c[2].Y, c[3].Y)
	return splitCubicAt(c, ts)
}

// SplitCubicAtX is the X-axis analogue of SplitCubicAtY.
func SplitCubicAtX(c CubicPoints) []CubicPoints {
	ts := FindCubicExtrema(c[0].X, c[1].X, c[2].X, c[3].X)
	return splitCubicAt(c, ts)
}

func splitCubicAt(c CubicPoints, ts []float64) []CubicPoints {
	if len(ts) == 0 {
		return []CubicPoints{c}
	}
	out := make([]CubicPoints, 0, len(ts)+1)
	remaining := c
	prevT := 0.0
	for _, t := range ts {
		localT := (t - prevT) / (1 - prevT)
		left, right := subdivideCubic(remaining, localT)
		out = append(out, left)
		remaining = right
		prevT = t
	}
	out = append(out, remaining)
	return out
}

func subdivideCubic(c CubicPoints, t float64) (left, right CubicPoints) {
	p01 := c[0].Lerp(c[1], t)
	p12 := c[1].Lerp(c[2], t)
	p23 := c[2].Lerp(c[3], t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	p0123 := p012.Lerp(p123, t)
	left = CubicPoints{c[0], p01, p012, p0123}
	right = CubicPoints{p0123, p123, p23, c[3]}
	return left, right
}

// QuadFlatF24Dot8Tolerance is the flatness tolerance in 24.8 units for
// quadratics: 0.125 px (spec.md §4.1).
const QuadFlatF24Dot8Tolerance = 32

// QuadIsFlatF24Dot8 reports whether a quadratic given in 24.8 fixed-point
// control points [q0,q1,q2] is flat enough to emit as a line, using
// |((q0+q2)/2 - q1).x| + |((q0+q2)/2 - q1).y| <= 32.
func QuadIsFlatF24Dot8(q0x, q0y, q1x, q1y, q2x, q2y int32) bool {
	midX := (q0x + q2x) / 2
	midY := (q0y + q2y) / 2
	dx := midX - q1x
	dy := midY - q1y
	return abs32(dx)+abs32(dy) <= QuadFlatF24Dot8Tolerance
}

// CubicFlatF24Dot8Tolerance is F24Dot8One/2 (spec.md §4.1).
const CubicFlatF24Dot8Tolerance = 128

// CubicIsFlatF24Dot8 reports whether a cubic given in 24.8 fixed-point
// control points [c0,c1,c2,c3] is flat enough to emit as a line. All four of
// |2c0-3c1+c3| and |c0-3c2+2c3|, evaluated in both X and Y, must be <= 128.
func CubicIsFlatF24Dot8(c0x, c0y, c1x, c1y, c2x, c2y, c3x, c3y int32) bool {
	d1x := abs32(2*c0x - 3*c1x + c3x)
	d1y := abs32(2*c0y - 3*c1y + c3y)
	d2x := abs32(c0x - 3*c2x + 2*c3x)
	d2y := abs32(c0y - 3*c2y + 2*c3y)
	return d1x <= CubicFlatF24Dot8Tolerance && d1y <= CubicFlatF24Dot8Tolerance &&
		d2x <= CubicFlatF24Dot8Tolerance && d2y <= CubicFlatF24Dot8Tolerance
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// CutCubicAtY finds a t in [0,1] at which the cubic's Y coordinate equals
// target (the only such t when the cubic is monotonic in Y), using
// bisection with tolerance 1e-7 on the interpolated value (spec.md §4.1). Returns false if no sign change exists
// over [0,1] (i.e. the cubic's Y range doesn't cross target monotonically).
func CutCubicAtY(c CubicPoints, target float64) (float64, bool) {
	return bisect(func(t float64) float64 {
		return evalCubic(c[0].Y, c[1].Y, c[2].Y, c[3].Y, t) - target
	})
}

// CutCubicAtX is the X-axis analogue of CutCubicAtY.
func CutCubicAtX(c CubicPoints, target float64) (float64, bool) {
	return bisect(func(t float64) float64 {
		return evalCubic(c[0].X, c[1].X, c[2].X, c[3].X, t) - target
	})
}

const bisectTolerance = 1e-7

func bisect(f func(t float64) float64) (float64, bool) {
	lo, hi := 0.0, 1.0
	fLo, fHi := f(lo), f(hi)
	if fLo == 0 {
		return lo, true
	}
	if fHi == 0 {
		return hi, true
	}
	if sameSign(fLo, fHi) {
		return 0, false
	}
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		fMid := f(mid)
		if math.Abs(fMid) <= bisectTolerance {
			return mid, true
		}
		if sameSign(fMid, fLo) {
			lo, fLo = mid, fMid
		} else {
			hi, fHi = mid, fMid
		}
	}
	return (lo + hi) / 2, true
}

func sameSign(a, b float64) bool {
	return (a < 0) == (b < 0)
}

func evalCubic(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
}
