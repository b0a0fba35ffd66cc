// Package tilecfg defines the tile descriptor, tile bounds, and clip bounds
// types shared by the linearizer, binner, and rasterizer (spec.md §3).
package tilecfg

import "github.com/gogpu/vraster/internal/fixed"

// Descriptor fixes one (TileW, TileH) configuration and derives the
// constants the rest of the pipeline needs from it. spec.md §9 treats this
// as a compile-time/generic parameter in the reference design; this repo
// realizes it as a plain value (see DESIGN.md for why a runtime struct is
// the idiomatic Go fit here rather than five monomorphized generic
// instantiations).
type Descriptor struct {
	TileW, TileH int
}

// Reference configurations named in spec.md §3. Reference is the
// TileW=16, TileH=8 configuration the frame driver defaults to.
var (
	Tile8x16  = Descriptor{TileW: 8, TileH: 16}
	Tile16x8  = Descriptor{TileW: 16, TileH: 8}
	Tile8x32  = Descriptor{TileW: 8, TileH: 32}
	Tile8x8   = Descriptor{TileW: 8, TileH: 8}
	Tile64x16 = Descriptor{TileW: 64, TileH: 16}

	Reference = Tile16x8
)

// TileWF24Dot8 returns TileW expressed in 24.8 fixed point.
func (d Descriptor) TileWF24Dot8() fixed.F24Dot8 {
	return fixed.F24Dot8(d.TileW) * fixed.F24Dot8One
}

// TileHF24Dot8 returns TileH expressed in 24.8 fixed point.
func (d Descriptor) TileHF24Dot8() fixed.F24Dot8 {
	return fixed.F24Dot8(d.TileH) * fixed.F24Dot8One
}

// PixelToColumn converts a pixel-space X coordinate to the tile column
// containing it.
func (d Descriptor) PixelToColumn(x int32) int32 {
	return divFloor(x, int32(d.TileW))
}

// PixelToRow converts a pixel-space Y coordinate to the tile row containing
// it.
func (d Descriptor) PixelToRow(y int32) int32 {
	return divFloor(y, int32(d.TileH))
}

func divFloor(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ZeroCovers returns a freshly allocated all-zero cover row of length
// TileH.
func (d Descriptor) ZeroCovers() []int32 {
	return make([]int32, d.TileH)
}

// Bounds describes a rectangular region of tiles: {X, Y, ColumnCount,
// RowCount}, all in tile units.
type Bounds struct {
	X, Y                  int32
	ColumnCount, RowCount int32
}

// IsEmpty reports whether the bounds enclose no tiles.
func (b Bounds) IsEmpty() bool {
	return b.ColumnCount <= 0 || b.RowCount <= 0
}

// PixelRect returns the pixel-space rectangle covered by these tile bounds,
// under descriptor d.
func (b Bounds) PixelRect(d Descriptor) (minX, minY, maxX, maxY int32) {
	minX = b.X * int32(d.TileW)
	minY = b.Y * int32(d.TileH)
	maxX = minX + b.ColumnCount*int32(d.TileW)
	maxY = minY + b.RowCount*int32(d.TileH)
	return
}

// ClipBounds holds the pixel-space clipping maxima in both floating-point
// and 24.8 fixed-point form (spec.md §3).
type ClipBounds struct {
	MaxX, MaxY float64
	FMaxX      fixed.F24Dot8
	FMaxY      fixed.F24Dot8
}

// NewClipBounds derives a ClipBounds from integer image dimensions.
func NewClipBounds(width, height int) ClipBounds {
	return ClipBounds{
		MaxX:  float64(width),
		MaxY:  float64(height),
		FMaxX: fixed.F24Dot8(width) * fixed.F24Dot8One,
		FMaxY: fixed.F24Dot8(height) * fixed.F24Dot8One,
	}
}
