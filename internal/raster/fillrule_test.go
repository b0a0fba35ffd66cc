package raster

import "testing"

func TestApplyFillRule_NonZero(t *testing.T) {
	tests := []struct {
		name string
		area int32
		want uint8
	}{
		{"zero", 0, 0},
		{"full positive", 256 << 9, 255},
		{"full negative", -256 << 9, 255},
		{"half", 128 << 9, 128},
		{"overshoot clamps", 1000 << 9, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyFillRule(NonZero, tt.area); got != tt.want {
				t.Errorf("ApplyFillRule(NonZero, %d) = %d, want %d", tt.area, got, tt.want)
			}
		})
	}
}

func TestApplyFillRule_EvenOdd(t *testing.T) {
	tests := []struct {
		name string
		area int32
		want uint8
	}{
		{"zero winding", 0, 0},
		{"one winding (fully inside)", 256 << 9, 255},
		{"two windings (back outside)", 512 << 9, 0},
		{"three windings (inside again)", 768 << 9, 255},
		{"negative one winding", -256 << 9, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyFillRule(EvenOdd, tt.area); got != tt.want {
				t.Errorf("ApplyFillRule(EvenOdd, %d) = %d, want %d", tt.area, got, tt.want)
			}
		})
	}
}
