package raster

import (
	"math/bits"

	"github.com/gogpu/vraster/internal/fixed"
)

// Table is the per-tile-row scratch accumulator: one (cover, area) pair per
// pixel column, per scanline, plus a bit vector marking which columns were
// touched since the last clear (spec.md §4.8). NewTable allocates it on the
// Go heap with make, not from a task arena; it is reused across every
// geometry that touches the row.
type Table struct {
	tileH   int
	columns int
	words   int

	cover [][]int32
	area  [][]int32
	bits  [][]uint64
}

// NewTable allocates a scratch table sized for a tile row tileH scanlines
// tall and columns pixels wide.
func NewTable(tileH, columns int) *Table {
	words := (columns + 63) / 64
	t := &Table{tileH: tileH, columns: columns, words: words}
	t.cover = make([][]int32, tileH)
	t.area = make([][]int32, tileH)
	t.bits = make([][]uint64, tileH)
	for i := 0; i < tileH; i++ {
		t.cover[i] = make([]int32, columns)
		t.area[i] = make([]int32, columns)
		t.bits[i] = make([]uint64, words)
	}
	return t
}

// ClearTouched zeroes only the columns marked touched by the bit vectors,
// then clears the bit vectors themselves. This is the "clear only the bit
// vectors between items" step of the row driver (spec.md §4.8): cells that
// were not touched are still zero, so clearing the full table on every item
// is unnecessary.
func (t *Table) ClearTouched() {
	for row := 0; row < t.tileH; row++ {
		touched := t.bits[row]
		cover := t.cover[row]
		area := t.area[row]
		for w, word := range touched {
			for word != 0 {
				idx := bits.TrailingZeros64(word)
				col := w*64 + idx
				if col < len(cover) {
					cover[col] = 0
					area[col] = 0
				}
				word &= word - 1
			}
		}
		for i := range touched {
			touched[i] = 0
		}
	}
}

func (t *Table) mark(row, col int) {
	if col < 0 || col >= t.columns {
		return
	}
	t.bits[row][col/64] |= 1 << uint(col%64)
}

// AddLine decomposes a line segment given in tile-row-local 24.8 fixed
// point (x in [0, columns*256], y in [0, tileH*256]) into per-pixel-cell
// (cover, area) contributions, following the trapezoid formula of
// spec.md §4.8: for the portion of the line inside one cell, with endpoints
// (xa, ya) and (xb, yb) expressed relative to the cell's top-left corner,
//
//	cover += ya - yb
//	area  += (ya - yb) * (512 - xa - xb)
func (t *Table) AddLine(x0, y0, x1, y1 fixed.F24Dot8) {
	if y0 == y1 {
		return
	}

	fx0, fy0 := float64(x0)/256, float64(y0)/256
	fx1, fy1 := float64(x1)/256, float64(y1)/256

	dxdy := (fx1 - fx0) / (fy1 - fy0)

	yLo, yHi := fy0, fy1
	xAtYLo, xAtYHi := fx0, fx1
	if yLo > yHi {
		yLo, yHi = yHi, yLo
		xAtYLo, xAtYHi = xAtYHi, xAtYLo
	}

	row := int(floorF(yLo))
	maxRow := t.tileH
	for row < maxRow {
		rowTop := float64(row)
		rowBot := float64(row + 1)
		segTop := maxF(yLo, rowTop)
		segBot := minF(yHi, rowBot)
		if segBot <= segTop {
			if rowTop >= yHi {
				break
			}
			row++
			continue
		}

		xSegTop := xAtYLo + (segTop-yLo)*dxdy
		xSegBot := xAtYLo + (segBot-yLo)*dxdy

		// Orient (ya,xa)->(yb,xb) along the original y0->y1 direction so the
		// cover sign matches winding direction.
		var ya, yb, xa, xb float64
		if y0 <= y1 {
			ya, yb = segTop, segBot
			xa, xb = xSegTop, xSegBot
		} else {
			ya, yb = segBot, segTop
			xa, xb = xSegBot, xSegTop
		}

		t.accumulateScanline(row, xa, xb, ya, yb)

		if segBot >= yHi {
			break
		}
		row++
	}
}

// accumulateScanline splits the portion of a line already known to lie
// within one scanline row into per-column cells. (xa,ya)->(xb,yb) is
// oriented along the original line direction, so ya-yb carries the correct
// winding sign; x is monotonic in y (and therefore y affine in x) across
// the slice since it was produced from a single straight segment.
func (t *Table) accumulateScanline(row int, xa, xb, ya, yb float64) {
	if xa == xb {
		col := int(floorF(xa))
		if col >= 0 && col < t.columns {
			localX := (xa - float64(col)) * 256
			cover := int32((ya - yb) * 256)
			area := cover * int32(512-2*localX)
			t.cover[row][col] += cover
			t.area[row][col] += area
			t.mark(row, col)
		}
		return
	}

	dydx := (yb - ya) / (xb - xa)

	xLeft, xRight := xa, xb
	yAtLeft, yAtRight := ya, yb
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
		yAtLeft, yAtRight = yAtRight, yAtLeft
	}

	col := int(floorF(xLeft))
	maxCol := t.columns
	for col < maxCol && col < int(floorF(xRight))+1 {
		colLeft := float64(col)
		colRight := float64(col + 1)
		segXLeft := maxF(xLeft, colLeft)
		segXRight := minF(xRight, colRight)
		if segXRight <= segXLeft {
			col++
			continue
		}

		yLeft := yAtLeft + (segXLeft-xLeft)*dydx
		yRight := yAtLeft + (segXRight-xLeft)*dydx

		// Re-orient to the original line direction: if the line ran from
		// high-x to low-x (xa>xb), the original direction walks
		// segXRight->segXLeft.
		var yEntry, yExit, xEntry, xExit float64
		if xa <= xb {
			xEntry, xExit = segXLeft, segXRight
			yEntry, yExit = yLeft, yRight
		} else {
			xEntry, xExit = segXRight, segXLeft
			yEntry, yExit = yRight, yLeft
		}

		if col >= 0 {
			localXa := (xEntry - colLeft) * 256
			localXb := (xExit - colLeft) * 256
			cover := int32((yEntry - yExit) * 256)
			area := cover * int32(512-localXa-localXb)
			t.cover[row][col] += cover
			t.area[row][col] += area
			t.mark(row, col)
		}

		col++
	}
}

func floorF(v float64) float64 {
	i := float64(int64(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
