package imaging

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"log/slog"
	"os"
	"runtime"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
	"golang.org/x/sync/errgroup"
)

// Source is one input image. Its dimensions are unknown until Probe succeeds.
type Source struct {
	Path   string
	Width  int
	Height int
}

// Probe reads the image header to fill in Width and Height without decoding
// pixel data.
func (s *Source) Probe() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return &SourceError{Path: s.Path, Op: "open", Err: classifyIOError(err)}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return &SourceError{Path: s.Path, Op: "probe", Err: err}
	}
	s.Width, s.Height = cfg.Width, cfg.Height
	return nil
}

// LoadOptions controls how sources are normalized into a strip.
type LoadOptions struct {
	// Width is the strip width. Zero means the smallest native width among
	// the sources, which avoids upscaling anything past its own resolution.
	Width int

	// IgnoreUnloadable drops sources that fail to open or decode instead of
	// aborting the whole load.
	IgnoreUnloadable bool

	// Workers bounds the number of sources decoded concurrently. Zero or
	// less means runtime.NumCPU().
	Workers int

	// Logger receives per-source progress. Nil means slog.Default().
	Logger *slog.Logger
}

func (o LoadOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o LoadOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// layout is the shared geometry every source is normalized to.
type layout struct {
	width   int
	ceiling int
}

// Load decodes paths in the given order, resizes each to a common width with
// a Lanczos filter, and stacks them into one strip.
//
// Decoding runs on a bounded worker pool; the strip is always assembled in
// the order of paths regardless of which decode finishes first.
//
// # Errors
//
//   - ErrNoImagesLoaded if paths is empty or every source was dropped
//   - *SourceError for the first source that fails, unless IgnoreUnloadable
//     is set; its Err is classified with ErrNotFound / ErrPermissionDenied
//     for file-system failures
//   - an error if opts.Width is negative
func Load(ctx context.Context, paths []string, opts LoadOptions) (*Strip, error) {
	if opts.Width < 0 {
		return nil, fmt.Errorf("invalid width %d", opts.Width)
	}
	if len(paths) == 0 {
		return nil, ErrNoImagesLoaded
	}
	logger := opts.logger()

	sources, err := probeAll(ctx, paths, opts)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrNoImagesLoaded
	}

	geo := planLayout(sources, opts.Width)
	logger.Debug("normalizing sources",
		"sources", len(sources),
		"width", geo.width,
		"height_ceiling", geo.ceiling,
	)

	buffers, err := decodeAll(ctx, sources, geo, opts)
	if err != nil {
		return nil, err
	}

	kept := make([]*Source, 0, len(sources))
	bufs := make([]*image.NRGBA, 0, len(sources))
	for i, buf := range buffers {
		if buf == nil {
			continue
		}
		kept = append(kept, sources[i])
		bufs = append(bufs, buf)
	}
	if len(bufs) == 0 {
		return nil, ErrNoImagesLoaded
	}

	strip, err := assemble(ctx, kept, bufs, geo.width, opts.workers())
	if err != nil {
		return nil, err
	}
	logger.Info("loaded strip",
		"sources", len(kept),
		"dropped", len(paths)-len(kept),
		"width", strip.Width(),
		"height", strip.Height(),
	)
	return strip, nil
}

// probeAll reads every header concurrently. Failed sources are either
// returned as an error or, when ignoring unloadable sources, left out.
func probeAll(ctx context.Context, paths []string, opts LoadOptions) ([]*Source, error) {
	probed := make([]*Source, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := &Source{Path: path}
			if err := src.Probe(); err != nil {
				if opts.IgnoreUnloadable {
					opts.logger().Warn("skipping unloadable image", "path", path, "error", err)
					return nil
				}
				return err
			}
			probed[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sources := make([]*Source, 0, len(probed))
	for _, src := range probed {
		if src != nil {
			sources = append(sources, src)
		}
	}
	return sources, nil
}

// planLayout picks the strip width and the resize height ceiling.
//
// The ceiling is the tallest native height scaled by the largest upscale any
// source receives, so it bounds the resize without ever changing an aspect
// ratio.
func planLayout(sources []*Source, width int) layout {
	minWidth, maxHeight := sources[0].Width, sources[0].Height
	for _, src := range sources[1:] {
		minWidth = min(minWidth, src.Width)
		maxHeight = max(maxHeight, src.Height)
	}
	if width == 0 {
		width = minWidth
	}
	ceiling := maxHeight
	if minWidth > 0 && width > minWidth {
		ceiling = (maxHeight*width + minWidth - 1) / minWidth
	}
	return layout{width: width, ceiling: ceiling}
}

// decodeAll decodes and resizes every source. The returned slice is indexed
// like sources; entries for dropped sources are nil.
func decodeAll(ctx context.Context, sources []*Source, geo layout, opts LoadOptions) ([]*image.NRGBA, error) {
	buffers := make([]*image.NRGBA, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf, err := decodeNormalized(src, geo)
			if err != nil {
				if opts.IgnoreUnloadable {
					opts.logger().Warn("skipping unloadable image", "path", src.Path, "error", err)
					return nil
				}
				return err
			}
			opts.logger().Debug("decoded source",
				"path", src.Path,
				"native_width", src.Width,
				"native_height", src.Height,
				"height", buf.Rect.Dy(),
			)
			buffers[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buffers, nil
}

func decodeNormalized(src *Source, geo layout) (*image.NRGBA, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, &SourceError{Path: src.Path, Op: "open", Err: classifyIOError(err)}
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, &SourceError{Path: src.Path, Op: "decode", Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() == geo.width {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, geo.width, scaledHeight(bounds.Dx(), bounds.Dy(), geo), imaging.Lanczos), nil
}

// scaledHeight keeps the aspect ratio of a w×h image resized to geo.width,
// rounded to the nearest row, at least one row, and no taller than the
// ceiling.
func scaledHeight(w, h int, geo layout) int {
	scaled := (h*geo.width*2 + w) / (w * 2)
	if scaled < 1 {
		scaled = 1
	}
	if geo.ceiling > 0 && scaled > geo.ceiling {
		scaled = geo.ceiling
	}
	return scaled
}

// assemble copies every buffer into its own row range of a freshly allocated
// strip. The ranges never overlap, so the copies run in parallel without
// locking.
func assemble(ctx context.Context, sources []*Source, bufs []*image.NRGBA, width, workers int) (*Strip, error) {
	offsets := make([]int, len(bufs))
	height := 0
	for i, buf := range bufs {
		offsets[i] = height
		height += buf.Rect.Dy()
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowBytes := width * 4

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, buf := range bufs {
		i, buf := i, buf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for y := 0; y < buf.Rect.Dy(); y++ {
				to := dst.Pix[(offsets[i]+y)*dst.Stride:]
				from := buf.Pix[y*buf.Stride:]
				copy(to[:rowBytes], from[:rowBytes])
				for a := 3; a < rowBytes; a += 4 {
					to[a] = 0xff
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(sources))
	for i, src := range sources {
		paths[i] = src.Path
	}
	return &Strip{img: dst, sources: paths, offsets: offsets}, nil
}
