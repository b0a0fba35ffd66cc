package raster

import (
	"testing"

	"github.com/gogpu/vraster/internal/fixed"
)

func px(v float64) fixed.F24Dot8 { return fixed.DoubleToF24Dot8(v) }

// A vertical line spanning a whole scanline's height at the left edge of a
// column produces full cover for that column and every column after it, and
// a full-pixel alpha for the remainder of the row.
func TestTable_VerticalLineFullCover(t *testing.T) {
	tab := NewTable(1, 4)
	// Downward-traversing vertical line at x=1, full tile height.
	tab.AddLine(px(1), px(0), px(1), px(1))

	var running int32
	for col := 0; col < 4; col++ {
		total := running*512 + tab.area[0][col]
		alpha := ApplyFillRule(NonZero, total)
		running += tab.cover[0][col]
		if col < 1 && alpha != 0 {
			t.Errorf("col %d alpha = %d, want 0 before the line", col, alpha)
		}
		if col >= 1 && alpha != 255 {
			t.Errorf("col %d alpha = %d, want 255 after the line", col, alpha)
		}
	}
	// A downward-traversing line (y increasing) contributes negative cover
	// (spec.md §4.6: "downward line receive -256 per scanline").
	if running != -256 {
		t.Errorf("final running cover = %d, want -256", running)
	}
}

// A line entirely within a single pixel cell produces a cover equal to the
// vertical traversal and an area consistent with the trapezoid formula.
func TestTable_SinglePixelDiagonal(t *testing.T) {
	tab := NewTable(1, 2)
	// (0.25, 0.0) -> (0.75, 1.0): fully inside column 0, traveling downward.
	tab.AddLine(px(0.25), px(0), px(0.75), px(1))

	wantCover := int32(-256) // (ya-yb) scaled by 256 over the full unit height
	if got := tab.cover[0][0]; got != wantCover {
		t.Errorf("cover[0][0] = %d, want %d", got, wantCover)
	}
	// area = (ya-yb)*(512-xa-xb); xa=0.25*256=64, xb=0.75*256=192 -> 512-256=256
	wantArea := int32(-256) * 256
	if got := tab.area[0][0]; got != wantArea {
		t.Errorf("area[0][0] = %d, want %d", got, wantArea)
	}
}

func TestTable_HorizontalLineIsNoOp(t *testing.T) {
	tab := NewTable(1, 2)
	tab.AddLine(px(0), px(0.5), px(2), px(0.5))
	for col := 0; col < 2; col++ {
		if tab.cover[0][col] != 0 || tab.area[0][col] != 0 {
			t.Errorf("col %d: horizontal line should contribute nothing, got cover=%d area=%d", col, tab.cover[0][col], tab.area[0][col])
		}
	}
}

func TestTable_ClearTouchedOnlyTouchesMarkedCells(t *testing.T) {
	tab := NewTable(1, 4)
	tab.AddLine(px(1), px(0), px(1), px(1))
	if tab.cover[0][1] == 0 {
		t.Fatal("expected column 1 to be touched before clear")
	}
	tab.ClearTouched()
	for col := 0; col < 4; col++ {
		if tab.cover[0][col] != 0 || tab.area[0][col] != 0 {
			t.Errorf("col %d not cleared: cover=%d area=%d", col, tab.cover[0][col], tab.area[0][col])
		}
	}
}
