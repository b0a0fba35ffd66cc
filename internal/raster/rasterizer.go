package raster

import (
	"github.com/gogpu/vraster/internal/blend"
	"github.com/gogpu/vraster/internal/fixed"
	"github.com/gogpu/vraster/internal/lineblock"
	"github.com/gogpu/vraster/internal/rowbin"
)

// Spans is the interface both blend.SpanBlender and blend.SpanBlenderOpaque
// satisfy, letting RasterizeRow pick the fast path per geometry without
// the row driver itself branching on alpha.
type Spans interface {
	Blend(row blend.Row, x0 int, coverage []uint8)
	Fill(row blend.Row, x0, n int)
}

// RowGeometry is the row driver's view of one geometry: its line data and
// compositing parameters, indexed by the geometry's own local tile-row
// number (spec.md §4.8). A geometry's line arrays store coordinates local
// to its own tile-column footprint (spec.md §4.6); ColumnOrigin reports
// that footprint's absolute tile-column offset within the image row so
// RasterizeRow can re-base them into the row's shared table.
type RowGeometry interface {
	Lines(localRow int32) lineblock.LineArray
	StartCovers(localRow int32) []int32 // length tileH, one entry per scanline
	FillRule() FillRule
	Spans() Spans
	ColumnOrigin() int32 // in tile units
}

// RasterizeRow replays every item touching one tile row, in painter's
// order, accumulating cover/area per geometry into table and compositing
// the resulting alpha runs into dest (one blend.Row per scanline, each at
// most columns pixels wide) via each geometry's Spans. table is reused
// across items; only its touched cells are cleared between them.
func RasterizeRow(table *Table, geoms func(int32) RowGeometry, items *rowbin.List, columns, tileW int, dest []blend.Row) {
	first := true
	items.ForEach(func(it rowbin.Item) {
		if !first {
			table.ClearTouched()
		}
		first = false

		g := geoms(it.GeometryIndex)
		lines := g.Lines(it.LocalRow)
		if lines != nil && !lines.IsEmpty() {
			offset := fixed.F24Dot8(int(g.ColumnOrigin())*tileW) * fixed.F24Dot8One
			lines.ForEach(func(x0, y0, x1, y1 fixed.F24Dot8) {
				table.AddLine(x0+offset, y0, x1+offset, y1)
			})
		}

		starts := g.StartCovers(it.LocalRow)
		rule := g.FillRule()
		spans := g.Spans()

		for scan := 0; scan < table.tileH && scan < len(dest); scan++ {
			var running int32
			if starts != nil && scan < len(starts) {
				running = starts[scan]
			}
			cover := table.cover[scan]
			area := table.area[scan]
			row := dest[scan]

			// The table may span more columns than this destination row
			// (the image width need not be a multiple of the tile width,
			// spec.md §3); clip every flush to len(row) so a geometry's
			// trailing, off-image columns are computed (for correct
			// running cover) but never written.
			width := len(row)

			runStart := -1
			var runAlpha uint8
			flush := func(end int) {
				if runStart < 0 || runStart >= width {
					return
				}
				if end > width {
					end = width
				}
				if end <= runStart {
					return
				}
				if runAlpha == 255 {
					spans.Fill(row, runStart, end-runStart)
				} else if runAlpha != 0 {
					cov := make([]uint8, end-runStart)
					for i := range cov {
						cov[i] = runAlpha
					}
					spans.Blend(row, runStart, cov)
				}
			}

			for col := 0; col < columns; col++ {
				total := running*512 + area[col]
				a := ApplyFillRule(rule, total)
				running += cover[col]

				if runStart < 0 {
					runStart = col
					runAlpha = a
					continue
				}
				if a != runAlpha {
					flush(col)
					runStart = col
					runAlpha = a
				}
			}
			flush(columns)
		}
	})
}
