// Package vraster implements a parallel, tiled, analytic-coverage CPU
// rasterizer: it converts a list of filled Bezier [Geometry] values into a
// premultiplied RGBA8 raster image at arbitrary resolution.
//
// The entry point is [Rasterize]. Geometries carry their own affine
// transform, premultiplied color, and fill rule; [Rasterize] additionally
// composes a single caller-supplied [geom.Matrix] (e.g. a camera or
// device-pixel-ratio transform) on top of every geometry's own transform.
//
// Rasterize is pure with respect to its inputs: given the same geometries,
// matrix, and image dimensions, the output buffer is bit-identical
// regardless of the pool's worker count.
package vraster
