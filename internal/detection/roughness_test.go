package detection

import (
	"image"
	"image/color"
	"testing"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"red", 255, 0, 0, 54},
		{"green", 0, 255, 0, 182},
		{"blue", 0, 0, 255, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := luma(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("luma(%d,%d,%d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestRowRoughness(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 4))
	for x := 0; x < 10; x++ {
		// Row 0: flat.
		img.SetNRGBA(x, 0, color.NRGBA{200, 200, 200, 255})
		// Row 1: alternating black and white.
		if x%2 == 0 {
			img.SetNRGBA(x, 1, color.NRGBA{0, 0, 0, 255})
		} else {
			img.SetNRGBA(x, 1, color.NRGBA{255, 255, 255, 255})
		}
		// Row 2: gentle gradient, step of 10.
		v := uint8(x * 10)
		img.SetNRGBA(x, 2, color.NRGBA{v, v, v, 255})
		// Row 3: flat except one pixel; alpha is ignored.
		img.SetNRGBA(x, 3, color.NRGBA{50, 50, 50, uint8(x * 20)})
	}
	img.SetNRGBA(6, 3, color.NRGBA{90, 90, 90, 255})

	got := RowRoughness(img)
	want := []uint8{0, 255, 10, 40}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRowRoughness_SubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{255, 255, 255, 255})

	sub := img.SubImage(image.Rect(0, 2, 4, 4)).(*image.NRGBA)
	got := RowRoughness(sub)
	if len(got) != 2 || got[0] != 255 || got[1] != 0 {
		t.Errorf("got %v, want [255 0]", got)
	}
}

func TestRowRoughness_NarrowImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 3))
	img.SetNRGBA(0, 1, color.NRGBA{255, 255, 255, 255})

	for i, score := range RowRoughness(img) {
		if score != 0 {
			t.Errorf("row %d: single-pixel rows have no neighbours, got %d", i, score)
		}
	}
}
