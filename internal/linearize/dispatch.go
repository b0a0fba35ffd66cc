package linearize

import (
	"github.com/gogpu/vraster/internal/fixed"
	"github.com/gogpu/vraster/internal/lineblock"
	"github.com/gogpu/vraster/internal/memory"
	"github.com/gogpu/vraster/internal/tilecfg"
)

// lineAppender is satisfied by both *lineblock.ArrayNarrow and
// *lineblock.ArrayWide.
type lineAppender interface {
	lineblock.LineArray
	AppendLine(s *lineblock.Slab, x0, y0, x1, y1 fixed.F24Dot8)
}

type dispatcher struct {
	mem   *memory.ThreadMemory
	desc  tilecfg.Descriptor
	tiles tilecfg.Bounds
	rows  []RowData
	arr   []lineAppender
	wide  bool
	clip  tilecfg.ClipBounds
}

func (d *dispatcher) rowArray(localRow int) lineAppender {
	if d.arr == nil {
		d.arr = make([]lineAppender, len(d.rows))
	}
	if d.arr[localRow] == nil {
		// Line-array headers must outlive this iteration's task-memory
		// reset: the binning and rasterization stages read them from later
		// ParallelFor calls, so they belong to the frame arena, not the
		// task arena (spec.md §3's lifecycle rule for "Linearizer output").
		if d.wide {
			d.arr[localRow] = memory.FrameNew[lineblock.ArrayWide](d.mem)
		} else {
			d.arr[localRow] = memory.FrameNew[lineblock.ArrayNarrow](d.mem)
		}
		d.rows[localRow].Lines = d.arr[localRow]
	}
	return d.arr[localRow]
}

// addSegment clips a device-space line segment to the image's Y range,
// splits it at tile-row boundaries, and for each piece either accumulates
// it as a start-cover contribution (when it lies left of the tile bounds'
// origin column, spec.md §4.6) or appends it to the owning row's line
// array.
func (d *dispatcher) addSegment(x0, y0, x1, y1 float64) {
	cx0, cy0, cx1, cy1, ok := clipY(x0, y0, x1, y1, 0, d.clip.MaxY)
	if !ok {
		return
	}

	tileH := float64(d.desc.TileH)
	originRow := float64(d.tiles.Y)
	lo, hi := cy0, cy1
	if lo > hi {
		lo, hi = hi, lo
	}

	row := int(floorDiv(lo, tileH))
	for {
		rowTop := float64(row) * tileH
		rowBot := rowTop + tileH
		segLo := maxF2(lo, rowTop)
		segHi := minF2(hi, rowBot)
		if segHi <= segLo {
			if rowTop >= hi {
				break
			}
			row++
			continue
		}

		t0 := (segLo - cy0) / (cy1 - cy0)
		t1 := (segHi - cy0) / (cy1 - cy0)
		if t0 > t1 {
			// Upward segment: keep the piece in the original direction so
			// its cover carries the correct winding sign.
			t0, t1 = t1, t0
		}
		px0 := cx0 + t0*(cx1-cx0)
		px1 := cx0 + t1*(cx1-cx0)
		py0 := cy0 + t0*(cy1-cy0)
		py1 := cy0 + t1*(cy1-cy0)

		localRow := row - int(originRow)
		if localRow >= 0 && localRow < len(d.rows) {
			d.dispatchRowPiece(localRow, row, px0, py0, px1, py1)
		}

		if segHi >= hi {
			break
		}
		row++
	}
}

func (d *dispatcher) dispatchRowPiece(localRow, row int, x0, y0, x1, y1 float64) {
	originX := float64(int(d.tiles.X) * d.desc.TileW)
	originY := float64(row) * float64(d.desc.TileH)
	maxX := float64(int(d.tiles.ColumnCount) * d.desc.TileW)

	rx0, ry0 := x0-originX, y0-originY
	rx1, ry1 := x1-originX, y1-originY

	if rx0 <= 0 && rx1 <= 0 {
		d.addStartCover(localRow, ry0, ry1)
		return
	}

	if rx0 < 0 || rx1 < 0 {
		// Split at x=0: the left portion becomes a start-cover
		// contribution, the right portion is appended normally.
		t, ok := lerpAtX(rx0, ry0, rx1, ry1, 0)
		if ok {
			my := lerpY(ry0, ry1, t)
			if rx0 < 0 {
				d.addStartCover(localRow, ry0, my)
				rx0, ry0 = 0, my
			} else {
				d.addStartCover(localRow, my, ry1)
				rx1, ry1 = 0, my
			}
		}
		if rx0 < 0 {
			rx0 = 0
		}
		if rx1 < 0 {
			rx1 = 0
		}
	}

	if rx0 > maxX {
		rx0 = maxX
	}
	if rx1 > maxX {
		rx1 = maxX
	}

	arr := d.rowArray(localRow)
	arr.AppendLine(&d.mem.Lines,
		fixed.DoubleToF24Dot8(rx0), fixed.DoubleToF24Dot8(ry0),
		fixed.DoubleToF24Dot8(rx1), fixed.DoubleToF24Dot8(ry1))
}

// addStartCover accumulates the pure-cover (no area) contribution of a
// segment lying to the left of a tile row's first column, splitting it
// per scanline the same way raster.Table.AddLine splits ordinary segments
// (spec.md §4.6).
func (d *dispatcher) addStartCover(localRow int, y0, y1 float64) {
	if y0 == y1 {
		return
	}
	lo, hi := y0, y1
	if lo > hi {
		lo, hi = hi, lo
	}
	covers := d.rows[localRow].StartCovers
	tileH := len(covers)
	scan := int(lo)
	for scan < tileH {
		scanTop := float64(scan)
		scanBot := scanTop + 1
		segLo := maxF2(lo, scanTop)
		segHi := minF2(hi, scanBot)
		if segHi <= segLo {
			if scanTop >= hi {
				break
			}
			scan++
			continue
		}
		dy := segHi - segLo
		if y0 < y1 {
			dy = -dy
		}
		covers[scan] += int32(dy * 256)
		if segHi >= hi {
			break
		}
		scan++
	}
}

func lerpAtX(x0, y0, x1, y1, targetX float64) (float64, bool) {
	if x1 == x0 {
		return 0, false
	}
	t := (targetX - x0) / (x1 - x0)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

func lerpY(y0, y1, t float64) float64 {
	return y0 + t*(y1-y0)
}

func clipY(x0, y0, x1, y1, loY, hiY float64) (nx0, ny0, nx1, ny1 float64, ok bool) {
	if y0 == y1 {
		if y0 < loY || y0 > hiY {
			return 0, 0, 0, 0, false
		}
		return x0, y0, x1, y1, true
	}
	t0, t1 := 0.0, 1.0
	tLo := (loY - y0) / (y1 - y0)
	tHi := (hiY - y0) / (y1 - y0)
	if tLo > tHi {
		tLo, tHi = tHi, tLo
	}
	if tLo > t0 {
		t0 = tLo
	}
	if tHi < t1 {
		t1 = tHi
	}
	if t0 >= t1 {
		return 0, 0, 0, 0, false
	}
	nx0 = x0 + t0*(x1-x0)
	ny0 = y0 + t0*(y1-y0)
	nx1 = x0 + t1*(x1-x0)
	ny1 = y0 + t1*(y1-y0)
	return nx0, ny0, nx1, ny1, true
}

func floorDiv(v, step float64) float64 {
	q := v / step
	f := float64(int64(q))
	if q < 0 && f != q {
		f--
	}
	return f
}

func maxF2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
