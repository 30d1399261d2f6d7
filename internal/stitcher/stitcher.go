// Package stitcher chains loading, splitpoint detection and export into a
// pipeline whose stages are distinct types.
//
// A Stitcher can only load, a Loaded strip can only be split, and only a
// Stitched result can be exported:
//
//	loaded, err := stitcher.New(logger).LoadDir(ctx, dir, imaging.SortNatural, loadOpts)
//	stitched, err := loaded.Stitch(detection.DefaultOptions())
//	result, err := stitched.Export(ctx, out, export.PNG(), export.DefaultOptions())
package stitcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ironsheep/quickstitch/internal/detection"
	"github.com/ironsheep/quickstitch/internal/export"
	"github.com/ironsheep/quickstitch/internal/imaging"
)

// Stitcher is the empty first stage.
type Stitcher struct {
	logger *slog.Logger
}

// New returns a Stitcher that logs through logger, or slog.Default() when
// logger is nil.
func New(logger *slog.Logger) *Stitcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stitcher{logger: logger}
}

// LoadDir discovers the supported images in dir, orders them with mode and
// loads them.
func (s *Stitcher) LoadDir(ctx context.Context, dir string, mode imaging.SortMode, opts imaging.LoadOptions) (*Loaded, error) {
	paths, err := imaging.Discover(dir, mode)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("discovered images", "dir", dir, "count", len(paths), "sort", mode.String())
	return s.Load(ctx, paths, opts)
}

// Load stacks paths, in the given order, into a strip.
func (s *Stitcher) Load(ctx context.Context, paths []string, opts imaging.LoadOptions) (*Loaded, error) {
	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	strip, err := imaging.Load(ctx, paths, opts)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	return &Loaded{logger: s.logger, strip: strip}, nil
}

// Loaded holds a strip that has not been split yet.
type Loaded struct {
	logger *slog.Logger
	strip  *imaging.Strip
}

// Strip returns the loaded strip.
func (l *Loaded) Strip() *imaging.Strip { return l.strip }

// Stitch finds splitpoints on the strip. The strip is shared, not copied,
// so several Stitch calls with different options are cheap.
func (l *Loaded) Stitch(opts detection.Options) (*Stitched, error) {
	sps, err := detection.FindSplitpoints(l.strip, opts)
	if err != nil {
		return nil, fmt.Errorf("find splitpoints: %w", err)
	}
	st := &Stitched{logger: l.logger, strip: l.strip, splitpoints: sps}
	l.logger.Info("planned pages",
		"pages", len(st.Pages()),
		"height", l.strip.Height(),
		"max_height", opts.MaxHeight,
		"min_height", opts.MinHeight,
	)
	return st, nil
}

// Stitched holds a strip and the splitpoints found on it.
type Stitched struct {
	logger      *slog.Logger
	strip       *imaging.Strip
	splitpoints []detection.Splitpoint
}

// Strip returns the strip the splitpoints refer to.
func (s *Stitched) Strip() *imaging.Strip { return s.strip }

// Splitpoints returns a copy of every cut and skipped row in scan order.
func (s *Stitched) Splitpoints() []detection.Splitpoint {
	out := make([]detection.Splitpoint, len(s.splitpoints))
	copy(out, s.splitpoints)
	return out
}

// Pages returns the row range of every page.
func (s *Stitched) Pages() []detection.Page { return detection.Pages(s.splitpoints) }

// Export writes every page into dir.
func (s *Stitched) Export(ctx context.Context, dir string, format export.Format, opts export.Options) (*export.Result, error) {
	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	return export.Export(ctx, s.strip, s.splitpoints, dir, format, opts)
}
