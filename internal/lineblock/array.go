package lineblock

import "github.com/gogpu/vraster/internal/fixed"

// LineArray is the common interface satisfied by ArrayNarrow and ArrayWide,
// letting the rasterizer and binner work with either line-array shape
// uniformly once a geometry has picked one (spec.md §4.9 chooses narrow vs
// wide once per geometry, by footprint, not per row).
type LineArray interface {
	IsEmpty() bool
	ForEach(fn func(x0, y0, x1, y1 fixed.F24Dot8))
}

var (
	_ LineArray = (*ArrayNarrow)(nil)
	_ LineArray = (*ArrayWide)(nil)
)

// NeedsWide derives whether a geometry should use the wide line-array shape,
// from its tile-column footprint, per spec.md §4.9: wide when
// columnCount*tileW >= 128.
func NeedsWide(columnCount, tileW int) bool {
	return columnCount*tileW >= 128
}
