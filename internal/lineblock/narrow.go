package lineblock

import "github.com/gogpu/vraster/internal/fixed"

// BlockNarrow is the X16Y16 line block shape (spec.md §3): used when a
// geometry's tile-column footprint times TileW is below 128 pixels, so both
// X and Y fit in 16 bits.
type BlockNarrow struct {
	Y0Y1 [LinesPerBlock]fixed.F8Dot8x2
	X0X1 [LinesPerBlock]fixed.F8Dot8x2
	Next *BlockNarrow
}

// ArrayNarrow is a per-tile-row list of BlockNarrow nodes holding the
// segments the linearizer dispatched to this row. New lines are appended to
// the front block (new blocks are pushed in front, mirroring the reference
// implementation's insertion order — row traversal during rasterization
// reads front-to-back, and painter order is established at the row-item
// level, not within a single geometry's own segments, so intra-geometry
// ordering here is irrelevant to output).
type ArrayNarrow struct {
	Front      *BlockNarrow
	FrontCount int
	TotalCount int
}

// AppendLine adds one line segment, in 24.8 tile-local fixed point already
// clamped to the tile row's bounds, to the array.
func (a *ArrayNarrow) AppendLine(s *Slab, x0, y0, x1, y1 fixed.F24Dot8) {
	if a.Front == nil || a.FrontCount == LinesPerBlock {
		blk := NewBlock[BlockNarrow](s)
		blk.Next = a.Front
		a.Front = blk
		a.FrontCount = 0
	}
	i := a.FrontCount
	a.Front.Y0Y1[i] = fixed.PackF24Dot8ToF8Dot8x2(y0, y1)
	a.Front.X0X1[i] = fixed.PackF24Dot8ToF8Dot8x2(x0, x1)
	a.FrontCount++
	a.TotalCount++
}

// IsEmpty reports whether the array holds no line segments.
func (a *ArrayNarrow) IsEmpty() bool {
	return a.Front == nil
}

// ForEach walks every line segment in the array, front block first (its
// FrontCount valid lines, in append order), then following Next through
// the rest of the list with a full LinesPerBlock count each.
func (a *ArrayNarrow) ForEach(fn func(x0, y0, x1, y1 fixed.F24Dot8)) {
	blk := a.Front
	count := a.FrontCount
	for blk != nil {
		for i := 0; i < count; i++ {
			x0, x1 := fixed.UnpackF8Dot8x2(blk.X0X1[i])
			y0, y1 := fixed.UnpackF8Dot8x2(blk.Y0Y1[i])
			fn(fixed.F24Dot8(x0), fixed.F24Dot8(y0), fixed.F24Dot8(x1), fixed.F24Dot8(y1))
		}
		blk = blk.Next
		count = LinesPerBlock
	}
}
