package vraster

import (
	"github.com/gogpu/vraster/internal/blend"
	"github.com/gogpu/vraster/internal/geom"
	"github.com/gogpu/vraster/internal/linearize"
	"github.com/gogpu/vraster/internal/lineblock"
	"github.com/gogpu/vraster/internal/memory"
	"github.com/gogpu/vraster/internal/raster"
	"github.com/gogpu/vraster/internal/rowbin"
	"github.com/gogpu/vraster/internal/tilecfg"
)

// rasterizableGeometry is the frame driver's per-geometry working state,
// built once per geometry during the first parallel_for of spec.md §4.9 and
// consumed by the binning and rasterization stages. A nil entry means the
// geometry was degenerate and contributes nothing to the frame (spec.md §7).
type rasterizableGeometry struct {
	tiles tilecfg.Bounds
	rows  []linearize.RowData
	rule  FillRule
	spans raster.Spans
}

func (g *rasterizableGeometry) Lines(localRow int32) lineblock.LineArray {
	if localRow < 0 || int(localRow) >= len(g.rows) {
		return nil
	}
	return g.rows[localRow].Lines
}

func (g *rasterizableGeometry) StartCovers(localRow int32) []int32 {
	if localRow < 0 || int(localRow) >= len(g.rows) {
		return nil
	}
	return g.rows[localRow].StartCovers
}

func (g *rasterizableGeometry) FillRule() raster.FillRule { return g.rule }
func (g *rasterizableGeometry) Spans() raster.Spans       { return g.spans }
func (g *rasterizableGeometry) ColumnOrigin() int32       { return g.tiles.X }

var _ raster.RowGeometry = (*rasterizableGeometry)(nil)

// Rasterize is the rasterizer's public entry point (spec.md §6): it
// composes matrix on top of every geometry's own transform, linearizes and
// bins each geometry in parallel across pool, then rasterizes every tile
// row of img in parallel. Rasterize is pure: the same inputs at any worker
// count produce a bit-identical output buffer (spec.md §8, property 1).
//
// Rasterize is a no-op if geometries is empty.
func Rasterize(geometries []Geometry, matrix geom.Matrix, pool *Pool, img Image) {
	RasterizeTiled(tilecfg.Reference, geometries, matrix, pool, img)
}

// RasterizeTiled is [Rasterize] with an explicit tile descriptor, exposing
// the other four (TileW, TileH) configurations spec.md §3 names besides
// the 16x8 reference default.
func RasterizeTiled(desc tilecfg.Descriptor, geometries []Geometry, matrix geom.Matrix, pool *Pool, img Image) {
	n := len(geometries)
	if n == 0 || img.Width <= 0 || img.Height <= 0 {
		return
	}

	clip := tilecfg.NewClipBounds(img.Width, img.Height)
	imageRect := geom.FloatRect{MinX: 0, MinY: 0, MaxX: float64(img.Width), MaxY: float64(img.Height)}
	imageTiles := tilecfg.TileAABB(imageRect.RoundOut(), desc)
	totalColumns := int(imageTiles.ColumnCount) * desc.TileW

	Logger().Debug("vraster: frame start",
		"geometries", n, "width", img.Width, "height", img.Height,
		"tileW", desc.TileW, "tileH", desc.TileH,
		"tileColumns", imageTiles.ColumnCount, "tileRows", imageTiles.RowCount)

	rasterizables := make([]*rasterizableGeometry, n)

	// Stage 1 (spec.md §4.9 step 2): build one RasterizableGeometry per
	// geometry, in parallel. Degenerate geometries are left nil.
	pool.ParallelFor(n, func(i int, mem *memory.ThreadMemory) {
		rasterizables[i] = buildRasterizable(mem, geometries[i], matrix, desc, clip, imageRect)
	})

	// Stage 2 (spec.md §4.9 step 3-4): compact into a dense array, then bin
	// every geometry's non-empty rows into per-tile-row item lists, in
	// parallel over row slices.
	dense := make([]*rasterizableGeometry, 0, n)
	for _, r := range rasterizables {
		if r != nil {
			dense = append(dense, r)
		}
	}

	rowCount := int(imageTiles.RowCount)
	rowLists := make([]rowbin.List, rowCount)

	pool.ParallelFor(rowCount, func(rowIdx int, mem *memory.ThreadMemory) {
		for gi, g := range dense {
			localRow := int32(rowIdx) - g.tiles.Y
			if localRow < 0 || int(localRow) >= len(g.rows) {
				continue
			}
			row := g.rows[localRow]
			if (row.Lines == nil || row.Lines.IsEmpty()) && allZero(row.StartCovers) {
				continue
			}
			rowLists[rowIdx].Append(&mem.Frame, int32(gi), localRow)
		}
	})

	// Stage 3 (spec.md §4.9 step 5): rasterize every tile row in parallel.
	// Each worker writes a disjoint contiguous scanline range, so no
	// locking is required (spec.md §5).
	pool.ParallelFor(rowCount, func(rowIdx int, mem *memory.ThreadMemory) {
		table := raster.NewTable(desc.TileH, totalColumns)
		baseY := int(imageTiles.Y)*desc.TileH + rowIdx*desc.TileH

		dest := make([]blend.Row, 0, desc.TileH)
		for s := 0; s < desc.TileH; s++ {
			y := baseY + s
			if y < 0 || y >= img.Height {
				break
			}
			dest = append(dest, img.Row(y))
		}

		geomAt := func(idx int32) raster.RowGeometry { return dense[idx] }
		raster.RasterizeRow(table, geomAt, &rowLists[rowIdx], totalColumns, desc.TileW, dest)
	})

	// Frame reset (spec.md §4.9 step 6, §4.5): reclaim every worker's
	// frame-lifetime and line-block memory now that the frame is done.
	pool.ResetFrameMemory()

	Logger().Debug("vraster: frame done", "rasterizable", len(dense))
}

func buildRasterizable(mem *memory.ThreadMemory, g Geometry, matrix geom.Matrix, desc tilecfg.Descriptor, clip tilecfg.ClipBounds, imageRect geom.FloatRect) *rasterizableGeometry {
	if g.Path == nil || len(g.Path.Tags) == 0 {
		return nil
	}

	combined := g.EffectiveTransform(matrix)
	effBounds := combined.MapRect(g.PathBounds)
	// Extend max-X by one pixel so a closing vertical line sitting exactly
	// on the right edge of the geometry's bounds is not dropped by tile
	// AABB rounding (spec.md §4.9 step 1).
	effBounds.MaxX++

	if !effBounds.Intersects(imageRect) {
		return nil
	}
	clipped := effBounds.Intersect(imageRect)
	if clipped.MinX == clipped.MaxX {
		return nil
	}

	tiles := tilecfg.TileAABB(clipped.RoundOut(), desc)
	if tiles.IsEmpty() {
		return nil
	}

	result := linearize.Linearize(mem, g.Path, combined, desc, clip, tiles)
	if result.Tiles.IsEmpty() {
		return nil
	}

	return &rasterizableGeometry{
		tiles: result.Tiles,
		rows:  result.Rows,
		rule:  g.Rule,
		spans: blend.NewSpanBlender(g.Color),
	}
}

func allZero(covers []int32) bool {
	for _, c := range covers {
		if c != 0 {
			return false
		}
	}
	return true
}
