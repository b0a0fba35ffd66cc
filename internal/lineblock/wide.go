package lineblock

import "github.com/gogpu/vraster/internal/fixed"

// BlockWide is the X32Y16 line block shape (spec.md §3): used when a
// geometry's tile-column footprint times TileW is at or above 128 pixels,
// so X coordinates need the full 32-bit F24Dot8 range while Y (bounded by
// tile height) still fits 8.8.
type BlockWide struct {
	Y0Y1 [LinesPerBlock]fixed.F8Dot8x2
	X0   [LinesPerBlock]fixed.F24Dot8
	X1   [LinesPerBlock]fixed.F24Dot8
	Next *BlockWide
}

// ArrayWide is the wide-coordinate analogue of ArrayNarrow.
type ArrayWide struct {
	Front      *BlockWide
	FrontCount int
	TotalCount int
}

// AppendLine adds one line segment, in 24.8 tile-local fixed point, to the
// array.
func (a *ArrayWide) AppendLine(s *Slab, x0, y0, x1, y1 fixed.F24Dot8) {
	if a.Front == nil || a.FrontCount == LinesPerBlock {
		blk := NewBlock[BlockWide](s)
		blk.Next = a.Front
		a.Front = blk
		a.FrontCount = 0
	}
	i := a.FrontCount
	a.Front.Y0Y1[i] = fixed.PackF24Dot8ToF8Dot8x2(y0, y1)
	a.Front.X0[i] = x0
	a.Front.X1[i] = x1
	a.FrontCount++
	a.TotalCount++
}

// IsEmpty reports whether the array holds no line segments.
func (a *ArrayWide) IsEmpty() bool {
	return a.Front == nil
}

// ForEach walks every line segment in the array; see ArrayNarrow.ForEach.
func (a *ArrayWide) ForEach(fn func(x0, y0, x1, y1 fixed.F24Dot8)) {
	blk := a.Front
	count := a.FrontCount
	for blk != nil {
		for i := 0; i < count; i++ {
			y0, y1 := fixed.UnpackF8Dot8x2(blk.Y0Y1[i])
			fn(blk.X0[i], fixed.F24Dot8(y0), blk.X1[i], fixed.F24Dot8(y1))
		}
		blk = blk.Next
		count = LinesPerBlock
	}
}
