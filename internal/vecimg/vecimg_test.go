package vecimg

import (
	"bytes"
	"testing"

	"github.com/gogpu/vraster/internal/geom"
)

func samplePaths() []Path {
	return []Path{
		{
			Color:    0xFF804020,
			Bounds:   geom.IntRect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			FillRule: NonZero,
			Tags:     []geom.Tag{geom.Move, geom.Line, geom.Line, geom.Line, geom.Close},
			Points: []geom.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			},
		},
		{
			Color:    0xFF0000FF,
			Bounds:   geom.IntRect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15},
			FillRule: EvenOdd,
			Tags:     []geom.Tag{geom.Move, geom.Quadratic, geom.Close},
			Points: []geom.Point{
				{X: 5, Y: 5}, {X: 10, Y: 0}, {X: 15, Y: 15},
			},
		},
	}
}

// S10 — round trip of the container format (spec.md §8 property 10).
func TestWriteParse_RoundTrip(t *testing.T) {
	paths := samplePaths()
	overall := geom.IntRect{MinX: 0, MinY: 0, MaxX: 15, MaxY: 15}

	var buf bytes.Buffer
	if err := Write(&buf, overall, paths); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != len(paths) {
		t.Fatalf("Parse returned %d paths, want %d", len(got), len(paths))
	}
	for i, want := range paths {
		g := got[i]
		if g.Color != want.Color {
			t.Errorf("path %d: Color = %#x, want %#x", i, g.Color, want.Color)
		}
		if g.Bounds != want.Bounds {
			t.Errorf("path %d: Bounds = %+v, want %+v", i, g.Bounds, want.Bounds)
		}
		if g.FillRule != want.FillRule {
			t.Errorf("path %d: FillRule = %v, want %v", i, g.FillRule, want.FillRule)
		}
		if len(g.Tags) != len(want.Tags) {
			t.Fatalf("path %d: %d tags, want %d", i, len(g.Tags), len(want.Tags))
		}
		for j := range want.Tags {
			if g.Tags[j] != want.Tags[j] {
				t.Errorf("path %d tag %d = %v, want %v", i, j, g.Tags[j], want.Tags[j])
			}
		}
		if len(g.Points) != len(want.Points) {
			t.Fatalf("path %d: %d points, want %d", i, len(g.Points), len(want.Points))
		}
		for j := range want.Points {
			if g.Points[j] != want.Points[j] {
				t.Errorf("path %d point %d = %+v, want %+v", i, j, g.Points[j], want.Points[j])
			}
		}
	}
}

func TestParse_BadMagicIsUnreadable(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("XXXX")))
	if err != ErrUnreadable {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}

func TestParse_WrongVersionIsUnreadable(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write([]byte{2, 0, 0, 0}) // version 2, little-endian
	_, err := Parse(&buf)
	if err != ErrUnreadable {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}

// A truncated record after at least one complete path returns the partial
// geometries with a nil error (spec.md §7).
func TestParse_TruncatedRecordReturnsPartial(t *testing.T) {
	paths := samplePaths()
	var buf bytes.Buffer
	if err := Write(&buf, geom.IntRect{}, paths); err != nil {
		t.Fatalf("Write: %v", err)
	}
	full := buf.Bytes()

	// Cut off partway through the second path's record, after the first
	// path has been fully written.
	cut := len(full) - 5
	got, err := Parse(bytes.NewReader(full[:cut]))
	if err != nil {
		t.Fatalf("Parse returned error on partial-but-nonempty stream: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Parse returned %d paths, want 1 (the complete one)", len(got))
	}
	if got[0].Color != paths[0].Color {
		t.Errorf("recovered path Color = %#x, want %#x", got[0].Color, paths[0].Color)
	}
}

func TestParse_TruncatedBeforeFirstPathIsUnreadable(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write([]byte{1, 0, 0, 0}) // version 1
	buf.Write([]byte{1, 0, 0, 0}) // pathCount=1
	// Missing the 16 bytes of overall bounds and any path data.
	_, err := Parse(&buf)
	if err != ErrUnreadable {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}
