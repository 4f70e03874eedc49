package core

import "testing"

func TestHex(t *testing.T) {
	c := Hex(0x3C3C64)
	if c != (RGB{0x3C, 0x3C, 0x64}) {
		t.Errorf("Expected {60 60 100}, got %+v", c)
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    RGB
	}{
		{0, 1, 0.5, RGB{255, 0, 0}},
		{120, 1, 0.5, RGB{0, 255, 0}},
		{240, 1, 0.5, RGB{0, 0, 255}},
		{360, 1, 0.5, RGB{255, 0, 0}},
		{-120, 1, 0.5, RGB{0, 0, 255}},
		{200, 0, 1, RGB{255, 255, 255}},
		{200, 1, 0, RGB{0, 0, 0}},
	}
	for _, tt := range tests {
		if got := HSL(tt.h, tt.s, tt.l); got != tt.want {
			t.Errorf("HSL(%f, %f, %f): Expected %+v, got %+v", tt.h, tt.s, tt.l, tt.want, got)
		}
	}
}

func TestBlendAndScale(t *testing.T) {
	base := RGB{0, 0, 0}
	white := RGB{255, 255, 255}

	if base.Blend(white, 0) != base || base.Blend(white, 1) != white {
		t.Error("Expected blend endpoints to return inputs")
	}
	if got := base.Blend(white, 0.5); got.R != 127 {
		t.Errorf("Expected mid blend 127, got %d", got.R)
	}
	if white.Scale(0) != RGBBlack {
		t.Error("Expected zero scale to be black")
	}
}
