package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/vraster/internal/geom"
	"github.com/gogpu/vraster/internal/vecimg"
)

func TestRun_ProducesDecodablePNG(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "square.bvec")
	outPath := filepath.Join(dir, "square.png")

	paths := []vecimg.Path{{
		Color:    0xFF804020,
		Bounds:   geom.IntRect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		FillRule: vecimg.NonZero,
		Tags:     []geom.Tag{geom.Move, geom.Line, geom.Line, geom.Line, geom.Close},
		Points: []geom.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}}

	f, err := os.Create(inPath)
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	if err := vecimg.Write(f, geom.IntRect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, paths); err != nil {
		t.Fatalf("write bvec: %v", err)
	}
	f.Close()

	if err := run(inPath, outPath, 20, 20, 2); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("decoded image size = %dx%d, want 20x20", b.Dx(), b.Dy())
	}
	r, g, b, a := img.At(2, 2).RGBA()
	if a>>8 != 0xFF {
		t.Fatalf("pixel (2,2) alpha = %d, want 255", a>>8)
	}
	if r>>8 != 0x20 || g>>8 != 0x40 || b>>8 != 0x80 {
		t.Fatalf("pixel (2,2) = (%d,%d,%d), want (0x20,0x40,0x80)", r>>8, g>>8, b>>8)
	}
}

func TestRun_MissingInputFileFails(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "missing.bvec"), filepath.Join(dir, "out.png"), 4, 4, 1)
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}
