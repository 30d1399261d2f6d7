package export

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/quickstitch/internal/detection"
)

// Default debug marker colours.
var (
	DefaultCutColor  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	DefaultSkipColor = color.NRGBA{R: 53, G: 81, B: 92, A: 255}
)

// ParseColor parses a "#RRGGBB" hex colour into an opaque NRGBA value.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// HexColor formats an NRGBA colour as "#RRGGBB".
func HexColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// drawMarkers paints a one-pixel horizontal line across page for every
// splitpoint that falls in [start, start+page height). Skipped rows are drawn
// first so a cut on the same row stays visible.
//
// page must be a private copy; the strip itself is never drawn on.
func drawMarkers(page *image.NRGBA, start int, splitpoints []detection.Splitpoint, cut, skip color.NRGBA) {
	end := start + page.Rect.Dy()
	for _, pass := range []struct {
		kind detection.Kind
		c    color.NRGBA
	}{
		{detection.KindSkipped, skip},
		{detection.KindCut, cut},
	} {
		for _, sp := range splitpoints {
			if sp.Kind != pass.kind || sp.Row < start || sp.Row >= end {
				continue
			}
			drawRow(page, sp.Row-start, pass.c)
		}
	}
}

func drawRow(img *image.NRGBA, y int, c color.NRGBA) {
	for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
		img.SetNRGBA(x, img.Rect.Min.Y+y, c)
	}
}
