// Package lineblock implements the fixed-capacity line-segment blocks the
// linearizer emits into (spec.md §3 "Line block", §4.4) and the slab
// allocator that backs them.
package lineblock

import "github.com/gogpu/vraster/internal/arena"

// ArenaSize is 32 KiB. Slab does not use it: its arenas are the blocks of
// an arena.Bump, each at least arena.BlockSize (128 KiB).
const ArenaSize = 32 * 1024

// LinesPerBlock is K, the number of line segments each X16Y16/X32Y16 block
// holds, matching the reference row-granular line arrays (not the K=8
// column-indexed tiled variant, which this repository does not implement;
// see DESIGN.md).
const LinesPerBlock = 32

// Slab is a bump allocator specialized for fixed-size line blocks. Each
// internal arena is a flat byte buffer of at least arena.BlockSize bytes;
// blocks are carved off sequentially until an arena is exhausted, at which
// point a fresh one is acquired from the free list or allocated. Clear
// moves every arena to the free list, matching spec.md §4.4.
type Slab struct {
	bump arena.Bump
}

// NewBlock carves space for one T (a line-block struct) from the slab and
// zero-initializes it. A T larger than arena.BlockSize gets an arena of
// its own size.
func NewBlock[T any](s *Slab) *T {
	return arena.New[T](&s.bump)
}

// Clear moves every slab arena to the free list, ready for the next frame.
func (s *Slab) Clear() {
	s.bump.Reset()
}
