// Package geom provides 2D point, rectangle, and affine transform types
// shared by the linearizer and rasterizer.
package geom

// Point is a 2D point in double precision.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Lerp returns the point t of the way from p to q (t=0 -> p, t=1 -> q).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// F24Dot8Point is a point with both coordinates in 24.8 fixed point, used
// for tile-local line endpoints after quantization.
type F24Dot8Point struct {
	X, Y int32
}
