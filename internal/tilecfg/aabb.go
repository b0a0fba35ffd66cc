package tilecfg

import "github.com/gogpu/vraster/internal/geom"

// TileAABB computes the tile-unit Bounds covering rect (already clipped to
// the destination image) under descriptor d, per spec.md §4.9's
// `tileAABB(clip(geometryBounds, imageRect))`.
func TileAABB(rect geom.IntRect, d Descriptor) Bounds {
	if rect.IsEmpty() {
		return Bounds{}
	}
	minCol := d.PixelToColumn(rect.MinX)
	minRow := d.PixelToRow(rect.MinY)
	maxCol := d.PixelToColumn(rect.MaxX-1) + 1
	maxRow := d.PixelToRow(rect.MaxY-1) + 1
	return Bounds{
		X:           minCol,
		Y:           minRow,
		ColumnCount: maxCol - minCol,
		RowCount:    maxRow - minRow,
	}
}
