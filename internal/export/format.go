package export

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

type formatKind uint8

const (
	kindPNG formatKind = iota + 1
	kindTIFF
	kindJPEG
)

// Format selects the encoder and file extension for exported pages. The set
// is closed: PNG, TIFF and JPEG at a given quality.
type Format struct {
	kind    formatKind
	quality int
}

// PNG returns the lossless PNG format.
func PNG() Format { return Format{kind: kindPNG} }

// TIFF returns the lossless alternative: Deflate-compressed TIFF.
func TIFF() Format { return Format{kind: kindTIFF} }

// JPEG returns the lossy JPEG format at quality 1-100.
func JPEG(quality int) Format { return Format{kind: kindJPEG, quality: quality} }

// ParseFormat maps a format name to a Format. Quality is only used for JPEG.
//
// Accepted names (case-insensitive): png, tiff, tif, jpg, jpeg.
func ParseFormat(name string, quality int) (Format, error) {
	var f Format
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "png":
		f = PNG()
	case "tiff", "tif":
		f = TIFF()
	case "jpg", "jpeg":
		f = JPEG(quality)
	default:
		return Format{}, fmt.Errorf("%w: unknown format %q (want png, tiff or jpg)", ErrInvalidFormat, name)
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// Validate reports whether f is a usable format.
func (f Format) Validate() error {
	switch f.kind {
	case kindPNG, kindTIFF:
		return nil
	case kindJPEG:
		if f.quality < 1 || f.quality > 100 {
			return fmt.Errorf("%w: jpeg quality %d outside 1-100", ErrInvalidFormat, f.quality)
		}
		return nil
	default:
		return fmt.Errorf("%w: zero format", ErrInvalidFormat)
	}
}

// Extension returns the file extension without a leading dot.
func (f Format) Extension() string {
	switch f.kind {
	case kindPNG:
		return "png"
	case kindTIFF:
		return "tiff"
	case kindJPEG:
		return "jpg"
	default:
		return ""
	}
}

// Quality returns the JPEG quality, or 0 for lossless formats.
func (f Format) Quality() int {
	if f.kind == kindJPEG {
		return f.quality
	}
	return 0
}

// Lossless reports whether the format preserves pixels exactly.
func (f Format) Lossless() bool { return f.kind == kindPNG || f.kind == kindTIFF }

func (f Format) String() string {
	if f.kind == kindJPEG {
		return fmt.Sprintf("jpg(q=%d)", f.quality)
	}
	if ext := f.Extension(); ext != "" {
		return ext
	}
	return "invalid"
}

// Encode writes img to w with the format's encoder.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f.kind {
	case kindPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case kindTIFF:
		return imaging.Encode(w, img, imaging.TIFF)
	case kindJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(f.quality))
	default:
		return f.Validate()
	}
}
