package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Strip is the single tall buffer formed by stacking every loaded source
// top to bottom at a common width.
//
// A Strip is never modified after Load returns it. Callers that need to draw
// on part of it must take a copy with Rows.
type Strip struct {
	img     *image.NRGBA
	sources []string
	offsets []int
}

// NewStrip wraps an existing image as a strip. The pixels are copied, so
// later changes to img do not affect the strip.
func NewStrip(img image.Image) *Strip {
	clone := imaging.Clone(img)
	opaque(clone)
	return &Strip{img: clone, offsets: []int{0}}
}

// Width returns the strip width in pixels.
func (s *Strip) Width() int { return s.img.Rect.Dx() }

// Height returns the strip height in pixels.
func (s *Strip) Height() int { return s.img.Rect.Dy() }

// Image returns the underlying buffer. It must be treated as read-only.
func (s *Strip) Image() *image.NRGBA { return s.img }

// Sources returns the paths that made it into the strip, in stacking order.
// It is empty for strips built with NewStrip.
func (s *Strip) Sources() []string {
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out
}

// Offsets returns the first strip row of every stacked source.
func (s *Strip) Offsets() []int {
	out := make([]int, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// Rows copies rows [start, end) into a new image whose origin is (0, 0).
func (s *Strip) Rows(start, end int) (*image.NRGBA, error) {
	if start < 0 || end > s.Height() || start >= end {
		return nil, fmt.Errorf("row range [%d,%d) outside strip height %d", start, end, s.Height())
	}
	return imaging.Crop(s.img, image.Rect(0, start, s.Width(), end)), nil
}

// opaque forces every pixel's alpha to 255; the strip carries RGB only.
func opaque(img *image.NRGBA) {
	w := img.Rect.Dx()
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
}
