package linearize

import (
	"github.com/gogpu/vraster/internal/curve"
	"github.com/gogpu/vraster/internal/fixed"
	"github.com/gogpu/vraster/internal/geom"
)

const maxFlattenDepth = 24

// walkPathSegments converts a path's tags/points into a sequence of line
// segments in device pixel space: lines are emitted directly, curves are
// monotonized on Y and flattened recursively to within the tolerances of
// spec.md §4.1.
func walkPathSegments(tags []geom.Tag, pts []geom.Point, emit func(x0, y0, x1, y1 float64)) {
	idx := 0
	var cur, subpathStart geom.Point
	haveCur := false

	for _, tag := range tags {
		n := tag.PointCount()
		args := pts[idx : idx+n]
		idx += n

		switch tag {
		case geom.Move:
			cur = args[0]
			subpathStart = cur
			haveCur = true
		case geom.Line:
			if haveCur {
				emit(cur.X, cur.Y, args[0].X, args[0].Y)
			}
			cur = args[0]
		case geom.Quadratic:
			q := curve.QuadPoints{cur, args[0], args[1]}
			for _, m := range curve.SplitQuadAtY(q) {
				flattenQuad(m, 0, emit)
			}
			cur = args[1]
		case geom.Cubic:
			c := curve.CubicPoints{cur, args[0], args[1], args[2]}
			for _, m := range curve.SplitCubicAtY(c) {
				flattenCubic(m, 0, emit)
			}
			cur = args[2]
		case geom.Close:
			if haveCur && (cur.X != subpathStart.X || cur.Y != subpathStart.Y) {
				emit(cur.X, cur.Y, subpathStart.X, subpathStart.Y)
			}
			cur = subpathStart
		}
	}
}

func flattenQuad(q curve.QuadPoints, depth int, emit func(x0, y0, x1, y1 float64)) {
	q0 := toF24Dot8(q[0])
	q1 := toF24Dot8(q[1])
	q2 := toF24Dot8(q[2])
	if depth >= maxFlattenDepth || curve.QuadIsFlatF24Dot8(q0.X, q0.Y, q1.X, q1.Y, q2.X, q2.Y) {
		emit(q[0].X, q[0].Y, q[2].X, q[2].Y)
		return
	}
	left, right := subdivideQuadAt(q, 0.5)
	flattenQuad(left, depth+1, emit)
	flattenQuad(right, depth+1, emit)
}

func flattenCubic(c curve.CubicPoints, depth int, emit func(x0, y0, x1, y1 float64)) {
	c0 := toF24Dot8(c[0])
	c1 := toF24Dot8(c[1])
	c2 := toF24Dot8(c[2])
	c3 := toF24Dot8(c[3])
	if depth >= maxFlattenDepth || curve.CubicIsFlatF24Dot8(c0.X, c0.Y, c1.X, c1.Y, c2.X, c2.Y, c3.X, c3.Y) {
		emit(c[0].X, c[0].Y, c[3].X, c[3].Y)
		return
	}
	left, right := subdivideCubicAt(c, 0.5)
	flattenCubic(left, depth+1, emit)
	flattenCubic(right, depth+1, emit)
}

func subdivideQuadAt(q curve.QuadPoints, t float64) (left, right curve.QuadPoints) {
	p01 := q[0].Lerp(q[1], t)
	p12 := q[1].Lerp(q[2], t)
	p012 := p01.Lerp(p12, t)
	return curve.QuadPoints{q[0], p01, p012}, curve.QuadPoints{p012, p12, q[2]}
}

func subdivideCubicAt(c curve.CubicPoints, t float64) (left, right curve.CubicPoints) {
	p01 := c[0].Lerp(c[1], t)
	p12 := c[1].Lerp(c[2], t)
	p23 := c[2].Lerp(c[3], t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	p0123 := p012.Lerp(p123, t)
	return curve.CubicPoints{c[0], p01, p012, p0123}, curve.CubicPoints{p0123, p123, p23, c[3]}
}

func toF24Dot8(p geom.Point) geom.F24Dot8Point {
	return geom.F24Dot8Point{
		X: int32(fixed.DoubleToF24Dot8(p.X)),
		Y: int32(fixed.DoubleToF24Dot8(p.Y)),
	}
}
