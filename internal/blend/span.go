package blend

// Row is a mutable view over one destination scanline's premultiplied RGBA8
// pixels, typically a slice into a larger image buffer.
type Row []Color

// SpanBlender composites a solid premultiplied color over a run of pixels
// at a per-pixel coverage (0..255), for the common case of partial
// coverage (spec.md §4.8). It is the generic, always-correct path.
type SpanBlender struct {
	Color Color
}

// Blend composites b.Color, scaled by each entry of coverage, onto row
// starting at column x0.
func (b SpanBlender) Blend(row Row, x0 int, coverage []uint8) {
	for i, cov := range coverage {
		if cov == 0 {
			continue
		}
		px := x0 + i
		row[px] = Over(row[px], ScaleCoverage(b.Color, cov))
	}
}

// Fill composites b.Color at full (255) coverage over row[x0:x0+n], the
// constant-coverage fast path used for a span's fully-covered interior
// (spec.md §4.8).
func (b SpanBlender) Fill(row Row, x0, n int) {
	for i := 0; i < n; i++ {
		row[x0+i] = Over(row[x0+i], b.Color)
	}
}

// SpanBlenderOpaque is SpanBlender specialized for a fully opaque source
// color (A==255): Over degenerates to a plain overwrite scaled only by
// coverage, skipping the destination read entirely on full-coverage runs.
type SpanBlenderOpaque struct {
	Color Color
}

// Blend composites an opaque color, scaled by per-pixel coverage, onto row.
func (b SpanBlenderOpaque) Blend(row Row, x0 int, coverage []uint8) {
	for i, cov := range coverage {
		switch cov {
		case 0:
			continue
		case 255:
			row[x0+i] = b.Color
		default:
			row[x0+i] = Over(row[x0+i], ScaleCoverage(b.Color, cov))
		}
	}
}

// Fill overwrites row[x0:x0+n] with the opaque color directly.
func (b SpanBlenderOpaque) Fill(row Row, x0, n int) {
	for i := 0; i < n; i++ {
		row[x0+i] = b.Color
	}
}

// NewSpanBlender selects SpanBlenderOpaque when c is fully opaque and
// SpanBlender otherwise, mirroring the teacher's dispatch-on-alpha
// compositor selection.
func NewSpanBlender(c Color) interface {
	Blend(row Row, x0 int, coverage []uint8)
	Fill(row Row, x0, n int)
} {
	if c.A == 255 {
		return SpanBlenderOpaque{Color: c}
	}
	return SpanBlender{Color: c}
}
