package detection

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Rec. 709 luma weights scaled by 10000.
const (
	lumaR   = 2126
	lumaG   = 7152
	lumaB   = 722
	lumaDiv = 10000
)

// luma converts an 8-bit RGB triple to 8-bit luminance, truncating.
func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b)) / lumaDiv)
}

// RowRoughness scores every row of img by the largest luminance jump between
// horizontally adjacent pixels. Rows are split across CPUs; each worker only
// writes its own rows of the result.
func RowRoughness(img *image.NRGBA) []uint8 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	scores := make([]uint8, height)

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			offset := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			scores[y] = rowRoughness(img.Pix[offset : offset+width*4])
		}
	})
	return scores
}

// rowRoughness scores a single row of packed RGBA pixels. Alpha is ignored.
func rowRoughness(pix []uint8) uint8 {
	if len(pix) < 8 {
		return 0
	}
	var worst uint8
	prev := luma(pix[0], pix[1], pix[2])
	for i := 4; i+2 < len(pix); i += 4 {
		cur := luma(pix[i], pix[i+1], pix[i+2])
		diff := cur - prev
		if prev > cur {
			diff = prev - cur
		}
		if diff > worst {
			worst = diff
			if worst == 255 {
				return worst
			}
		}
		prev = cur
	}
	return worst
}
