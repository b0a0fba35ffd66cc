package vraster

import (
	"testing"

	"github.com/gogpu/vraster/internal/geom"
)

func rectPath(x0, y0, x1, y1 float64) *geom.Path {
	return &geom.Path{
		Tags: []geom.Tag{geom.Move, geom.Line, geom.Line, geom.Line, geom.Close},
		Points: []geom.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		},
	}
}

func rectGeometry(x0, y0, x1, y1 float64, c Color, rule FillRule) Geometry {
	p := rectPath(x0, y0, x1, y1)
	return Geometry{
		Path:       p,
		PathBounds: p.Bounds(),
		TM:         geom.IdentityMatrix,
		Color:      c,
		Rule:       rule,
	}
}

func at(img Image, x, y int) Color {
	row := img.Row(y)
	return row[x]
}

// S1 — pixel-aligned opaque square (spec.md §8 scenario S1).
func TestRasterize_PixelAlignedOpaqueSquare(t *testing.T) {
	img := NewImage(20, 20)
	pool := NewPool(4)
	g := rectGeometry(0, 0, 10, 10, RGBA32(0xFF804020), NonZero)

	Rasterize([]Geometry{g}, geom.IdentityMatrix, pool, img)

	want := Color{R: 0x20, G: 0x40, B: 0x80, A: 0xFF}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			got := at(img, x, y)
			inside := x < 10 && y < 10
			if inside && got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
			if !inside && got != (Color{}) {
				t.Fatalf("pixel (%d,%d) outside square = %+v, want zero", x, y, got)
			}
		}
	}
}

// S2 — sub-pixel triangle: corner pixels must be partially covered, and the
// total coverage must approximate the triangle's geometric area.
func TestRasterize_SubPixelTriangle(t *testing.T) {
	img := NewImage(6, 6)
	pool := NewPool(4)
	path := &geom.Path{
		Tags: []geom.Tag{geom.Move, geom.Line, geom.Line, geom.Close},
		Points: []geom.Point{
			{X: 0.25, Y: 0.25}, {X: 4.75, Y: 0.25}, {X: 2.5, Y: 4.75},
		},
	}
	g := Geometry{
		Path:       path,
		PathBounds: path.Bounds(),
		TM:         geom.IdentityMatrix,
		Color:      RGBA32(0xFFFFFFFF),
		Rule:       NonZero,
	}
	Rasterize([]Geometry{g}, geom.IdentityMatrix, pool, img)

	var sum float64
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			sum += float64(at(img, x, y).A) / 255
		}
	}
	if sum < 9.5 || sum > 11.5 {
		t.Fatalf("sum(alpha)/255 = %v, want in [9.5, 11.5]", sum)
	}

	topLeft := at(img, 0, 0).A
	if topLeft == 0 || topLeft == 255 {
		t.Fatalf("corner pixel alpha = %d, want strictly between 0 and 255", topLeft)
	}
}

// S3 — even-odd annulus: the inner square must be exactly unpainted, the
// ring fully opaque.
func TestRasterize_EvenOddAnnulus(t *testing.T) {
	img := NewImage(20, 20)
	pool := NewPool(4)
	outer := &geom.Path{
		Tags:   []geom.Tag{geom.Move, geom.Line, geom.Line, geom.Line, geom.Close},
		Points: []geom.Point{{0, 0}, {20, 0}, {20, 20}, {0, 20}},
	}
	inner := &geom.Path{
		Tags:   []geom.Tag{geom.Move, geom.Line, geom.Line, geom.Line, geom.Close},
		Points: []geom.Point{{5, 5}, {5, 15}, {15, 15}, {15, 5}},
	}
	color := RGBA32(0xFF0000FF)
	g := Geometry{
		Path:       &geom.Path{Tags: append(append([]geom.Tag{}, outer.Tags...), inner.Tags...), Points: append(append([]geom.Point{}, outer.Points...), inner.Points...)},
		TM:         geom.IdentityMatrix,
		Color:      color,
		Rule:       EvenOdd,
	}
	g.PathBounds = g.Path.Bounds()

	Rasterize([]Geometry{g}, geom.IdentityMatrix, pool, img)

	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			if got := at(img, x, y); got != (Color{}) {
				t.Fatalf("interior pixel (%d,%d) = %+v, want zero", x, y, got)
			}
		}
	}
	want := Color{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			inRing := x >= 0 && x < 20 && y >= 0 && y < 20 && !(x >= 5 && x < 15 && y >= 5 && y < 15)
			if inRing {
				if got := at(img, x, y); got != want {
					t.Fatalf("ring pixel (%d,%d) = %+v, want %+v", x, y, got, want)
				}
			}
		}
	}
}

// S4 — left-of-image start-cover path: a rectangle extending far to the
// left of the image must still produce full coverage for the columns it
// overlaps inside the image.
func TestRasterize_LeftOfImageStartCover(t *testing.T) {
	img := NewImage(10, 10)
	pool := NewPool(4)
	g := rectGeometry(-100, 0, 4, 10, RGBA32(0xFFFFFFFF), NonZero)

	Rasterize([]Geometry{g}, geom.IdentityMatrix, pool, img)

	want := Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for y := 0; y < 10; y++ {
		for x := 0; x < 4; x++ {
			if got := at(img, x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want opaque white", x, y, got)
			}
		}
		for x := 4; x < 10; x++ {
			if got := at(img, x, y); got != (Color{}) {
				t.Fatalf("pixel (%d,%d) = %+v, want zero", x, y, got)
			}
		}
	}
}

// S6 — determinism under varying thread counts.
func TestRasterize_DeterministicAcrossThreadCounts(t *testing.T) {
	g := rectGeometry(1.3, 2.7, 18.9, 14.1, RGBA32(0x80FF8040), NonZero)
	var reference []byte
	for _, workers := range []int{1, 4, 16} {
		img := NewImage(24, 24)
		pool := NewPool(workers)
		Rasterize([]Geometry{g}, geom.IdentityMatrix, pool, img)
		if reference == nil {
			reference = append([]byte(nil), img.Pixels...)
			continue
		}
		for i := range reference {
			if reference[i] != img.Pixels[i] {
				t.Fatalf("workers=%d produced different output at byte %d: %d != %d", workers, i, img.Pixels[i], reference[i])
			}
		}
	}
}

// Empty input leaves the output buffer unchanged (spec.md §8 property 2).
func TestRasterize_EmptyInputIsNoOp(t *testing.T) {
	img := NewImage(8, 8)
	for i := range img.Pixels {
		img.Pixels[i] = byte(i)
	}
	before := append([]byte(nil), img.Pixels...)

	pool := NewPool(2)
	Rasterize(nil, geom.IdentityMatrix, pool, img)

	for i := range before {
		if before[i] != img.Pixels[i] {
			t.Fatalf("byte %d changed from %d to %d on empty input", i, before[i], img.Pixels[i])
		}
	}
}

// Painter order: two overlapping opaque rectangles end up colored by the
// one painted last (spec.md §8 property 4).
func TestRasterize_PainterOrder(t *testing.T) {
	img := NewImage(10, 10)
	pool := NewPool(4)
	red := rectGeometry(0, 0, 6, 6, RGBA32(0xFF0000FF), NonZero)
	blue := rectGeometry(3, 3, 9, 9, RGBA32(0xFFFF0000), NonZero)

	Rasterize([]Geometry{red, blue}, geom.IdentityMatrix, pool, img)

	if got := at(img, 4, 4); got != (Color{R: 0, G: 0, B: 0xFF, A: 0xFF}) {
		t.Fatalf("overlap pixel = %+v, want blue on top", got)
	}
	if got := at(img, 1, 1); got != (Color{R: 0xFF, G: 0, B: 0, A: 0xFF}) {
		t.Fatalf("red-only pixel = %+v, want red", got)
	}
}

// Geometries wholly outside the image contribute nothing and do not panic.
func TestRasterize_OffscreenGeometryIsSkipped(t *testing.T) {
	img := NewImage(4, 4)
	pool := NewPool(2)
	g := rectGeometry(100, 100, 110, 110, RGBA32(0xFFFFFFFF), NonZero)

	Rasterize([]Geometry{g}, geom.IdentityMatrix, pool, img)

	for _, b := range img.Pixels {
		if b != 0 {
			t.Fatalf("offscreen geometry touched the output buffer: %v", img.Pixels)
		}
	}
}
