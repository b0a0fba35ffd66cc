// Package linearize implements the Linearizer stage: transforming a path
// into device space, monotonizing and flattening its curves, clipping
// against the destination image, and dispatching the resulting line
// segments into per-tile-row line arrays with accumulated start covers
// (spec.md §4.6).
package linearize

import (
	"github.com/gogpu/vraster/internal/geom"
	"github.com/gogpu/vraster/internal/lineblock"
	"github.com/gogpu/vraster/internal/memory"
	"github.com/gogpu/vraster/internal/tilecfg"
)

// RowData holds one tile row's contribution: the row-local line array plus
// one start-cover value per scanline (spec.md §4.6's "start-cover
// accumulation").
type RowData struct {
	Lines       lineblock.LineArray
	StartCovers []int32
}

// Result is everything the binning and rasterization stages need for one
// geometry.
type Result struct {
	Tiles tilecfg.Bounds
	Rows  []RowData // len == Tiles.RowCount
}

// Linearize transforms path by m, flattens its curves, clips against clip,
// and dispatches the resulting lines into per-tile-row arrays. tiles is the
// geometry's tile-unit footprint, as computed by the frame driver from the
// geometry's own (clipped, right-edge-extended) effective bounds (spec.md
// §4.9); the linearizer itself only needs it to size the per-row output and
// to know where a segment's row-local origin sits. mem supplies the
// frame-lifetime arena and line-block slab; the returned Result's line
// arrays live in mem and stay valid until the caller's ResetFrame.
func Linearize(mem *memory.ThreadMemory, path *geom.Path, m geom.Matrix, desc tilecfg.Descriptor, clip tilecfg.ClipBounds, tiles tilecfg.Bounds) *Result {
	if tiles.IsEmpty() || len(path.Points) == 0 {
		return &Result{}
	}
	pts := transformPoints(path.Points, m)

	rows := make([]RowData, tiles.RowCount)
	for i := range rows {
		rows[i].StartCovers = make([]int32, desc.TileH)
	}

	wide := lineblock.NeedsWide(int(tiles.ColumnCount), desc.TileW)

	d := &dispatcher{
		mem:   mem,
		desc:  desc,
		tiles: tiles,
		rows:  rows,
		wide:  wide,
		clip:  clip,
	}

	walkPathSegments(path.Tags, pts, func(x0, y0, x1, y1 float64) {
		d.addSegment(x0, y0, x1, y1)
	})

	return &Result{Tiles: tiles, Rows: rows}
}

func transformPoints(pts []geom.Point, m geom.Matrix) []geom.Point {
	out := make([]geom.Point, len(pts))
	switch m.ComplexityOf() {
	case geom.Identity:
		copy(out, pts)
	default:
		for i, p := range pts {
			out[i] = m.MapPoint(p)
		}
	}
	return out
}
