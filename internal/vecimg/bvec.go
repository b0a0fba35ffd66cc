// Package vecimg implements the Bvec container format: a small
// little-endian binary encoding of a list of filled vector paths, used by
// cmd/vrasterdemo as sample input for the rasterizer (spec.md §6).
package vecimg

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/vraster/internal/geom"
)

// nopHandler silently discards all log records, matching the rest of this
// repository's per-package logger pattern.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used when Parse truncates a malformed
// record. Pass nil to restore the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func slogger() *slog.Logger { return loggerPtr.Load() }

var magic = [4]byte{'B', 'v', 'e', 'c'}

// Version is the only container version this package writes and the only
// version it reads; Parse rejects (via a fully-unreadable error) any
// stream declaring a different version.
const Version = 1

// FillRule mirrors the container's bit-0 fill rule encoding (spec.md §6):
// higher bits of the on-disk u32 are ignored.
type FillRule uint32

const (
	NonZero FillRule = 0
	EvenOdd FillRule = 1
)

// Path is one filled path read from (or to be written to) a Bvec stream.
type Path struct {
	Color    uint32 // premultiplied RGBA, byte order R,G,B,A low-to-high
	Bounds   geom.IntRect
	FillRule FillRule
	Tags     []geom.Tag
	Points   []geom.Point
}

// ErrUnreadable is returned by Parse when no path could be recovered at
// all: a bad magic, an unsupported version, or truncation before the first
// path's header.
var ErrUnreadable = errors.New("vecimg: stream unreadable")

// Parse reads a Bvec stream. If at least one complete path was decoded
// before truncation or a decoding error, Parse returns those paths with a
// nil error: partial geometry is still renderable. Parse only returns a
// non-nil error when zero paths could be recovered (spec.md §7).
func Parse(r io.Reader) ([]Path, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil || hdr != magic {
		return nil, ErrUnreadable
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil || version != Version {
		return nil, ErrUnreadable
	}

	var pathCount uint32
	if err := binary.Read(r, binary.LittleEndian, &pathCount); err != nil {
		return nil, ErrUnreadable
	}

	var imgBounds [4]int32
	if err := binary.Read(r, binary.LittleEndian, &imgBounds); err != nil {
		return nil, ErrUnreadable
	}

	paths := make([]Path, 0, pathCount)
	for i := uint32(0); i < pathCount; i++ {
		p, err := parseOnePath(r)
		if err != nil {
			slogger().Warn("vecimg: truncated record, returning partial geometries",
				"decoded", len(paths), "declared", pathCount, "err", err)
			break
		}
		paths = append(paths, p)
	}

	if len(paths) == 0 {
		return nil, ErrUnreadable
	}
	return paths, nil
}

func parseOnePath(r io.Reader) (Path, error) {
	var p Path

	var color uint32
	if err := binary.Read(r, binary.LittleEndian, &color); err != nil {
		return Path{}, err
	}
	p.Color = color

	var bounds [4]int32
	if err := binary.Read(r, binary.LittleEndian, &bounds); err != nil {
		return Path{}, err
	}
	p.Bounds = geom.IntRect{MinX: bounds[0], MinY: bounds[1], MaxX: bounds[2], MaxY: bounds[3]}

	var fillRule uint32
	if err := binary.Read(r, binary.LittleEndian, &fillRule); err != nil {
		return Path{}, err
	}
	p.FillRule = FillRule(fillRule & 1)

	var tagCount, pointCount uint32
	if err := binary.Read(r, binary.LittleEndian, &tagCount); err != nil {
		return Path{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &pointCount); err != nil {
		return Path{}, err
	}

	tags := make([]uint8, tagCount)
	if _, err := io.ReadFull(r, tags); err != nil {
		return Path{}, err
	}
	p.Tags = make([]geom.Tag, tagCount)
	for i, t := range tags {
		p.Tags[i] = geom.Tag(t)
	}

	// Points are 16-byte (f64 x, f64 y) pairs (spec.md §6): full double
	// precision round-trips exactly, unlike a float32 encoding would.
	coords := make([]float64, pointCount*2)
	if err := binary.Read(r, binary.LittleEndian, coords); err != nil {
		return Path{}, err
	}
	p.Points = make([]geom.Point, pointCount)
	for i := range p.Points {
		p.Points[i] = geom.Point{X: coords[2*i], Y: coords[2*i+1]}
	}

	return p, nil
}

// Write encodes paths as a Bvec stream. The provided overall bounds and
// each path's own bounds are stored in destination-image integer pixel
// coordinates, matching Parse's decode.
func Write(w io.Writer, bounds geom.IntRect, paths []Path) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(Version)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(paths))); err != nil {
		return err
	}
	imgBounds := [4]int32{bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY}
	if err := binary.Write(w, binary.LittleEndian, imgBounds); err != nil {
		return err
	}

	for _, p := range paths {
		if err := writeOnePath(w, p); err != nil {
			return err
		}
	}
	return nil
}

func writeOnePath(w io.Writer, p Path) error {
	if err := binary.Write(w, binary.LittleEndian, p.Color); err != nil {
		return err
	}
	bounds := [4]int32{p.Bounds.MinX, p.Bounds.MinY, p.Bounds.MaxX, p.Bounds.MaxY}
	if err := binary.Write(w, binary.LittleEndian, bounds); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(p.FillRule)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p.Tags))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p.Points))); err != nil {
		return err
	}
	tags := make([]uint8, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = uint8(t)
	}
	if _, err := w.Write(tags); err != nil {
		return err
	}
	coords := make([]float64, len(p.Points)*2)
	for i, pt := range p.Points {
		coords[2*i] = pt.X
		coords[2*i+1] = pt.Y
	}
	return binary.Write(w, binary.LittleEndian, coords)
}
