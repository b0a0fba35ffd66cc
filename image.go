package vraster

import (
	"unsafe"

	"github.com/gogpu/vraster/internal/blend"
)

// Image is a row-major premultiplied RGBA8 destination buffer (spec.md §6).
// BytesPerRow must be at least 4*Width; it may exceed that to allow for
// caller-side padding or a stride imposed by an external buffer owner.
// Width/Height are the logical clipping bounds: Rasterize never writes
// outside [0,Width) x [0,Height).
type Image struct {
	Pixels      []byte
	Width       int
	Height      int
	BytesPerRow int
}

// NewImage allocates a zeroed Image sized exactly width*height with no row
// padding (BytesPerRow == 4*width).
func NewImage(width, height int) Image {
	stride := width * 4
	return Image{
		Pixels:      make([]byte, stride*height),
		Width:       width,
		Height:      height,
		BytesPerRow: stride,
	}
}

// Row returns scanline y of the image as a slice of [blend.Color] pixels.
// blend.Color is laid out identically to the packed R,G,B,A byte quad
// (spec.md §6), so this is a zero-copy reinterpretation of the row's
// bytes, not a copy: writes through the returned slice are visible in
// img.Pixels.
func (img Image) Row(y int) blend.Row {
	start := y * img.BytesPerRow
	raw := img.Pixels[start : start+img.Width*4 : start+img.Width*4]
	return unsafe.Slice((*blend.Color)(unsafe.Pointer(&raw[0])), img.Width)
}
