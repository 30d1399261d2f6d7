package export

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/quickstitch/internal/detection"
	"github.com/ironsheep/quickstitch/internal/imaging"
)

// LockFileName is created inside the output directory while an export runs.
const LockFileName = ".quickstitch.lock"

// Options controls page export.
type Options struct {
	// Debug draws a one-pixel line on every page at each splitpoint that
	// falls inside it: CutColor for cuts, SkipColor for skipped rows.
	Debug     bool
	CutColor  color.NRGBA
	SkipColor color.NRGBA

	// Workers bounds concurrent page encodes. Zero or less means
	// runtime.NumCPU().
	Workers int

	Logger *slog.Logger
}

// DefaultOptions returns options with the standard debug colours.
func DefaultOptions() Options {
	return Options{CutColor: DefaultCutColor, SkipColor: DefaultSkipColor}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Result reports what an export wrote.
type Result struct {
	Dir    string           `json:"dir"`
	Format string           `json:"format"`
	Pages  []detection.Page `json:"pages"`

	// Files lists the written page paths in page order. Pages that failed
	// are absent.
	Files []string `json:"files"`
}

// FileName returns the output name of the page at 0-based index when total
// pages are written: the 1-based page number zero-padded to the width of
// total, plus the format extension.
func FileName(index, total int, format Format) string {
	width := len(strconv.Itoa(total))
	return fmt.Sprintf("%0*d.%s", width, index+1, format.Extension())
}

// Export slices strip at every cut in splitpoints and writes one file per
// page into dir. dir must already exist. The strip is never modified.
//
// A failure on one page does not stop the others; all failures are returned
// together as a BatchError alongside the Result for the pages that were
// written.
func Export(ctx context.Context, strip *imaging.Strip, splitpoints []detection.Splitpoint, dir string, format Format, opts Options) (*Result, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	log := opts.logger().With("dir", dir, "format", format.String())

	unlock, err := lockDir(dir, log)
	if err != nil {
		return nil, err
	}
	defer unlock()

	pages := detection.Pages(splitpoints)
	result := &Result{Dir: dir, Format: format.String(), Pages: pages}
	if len(pages) == 0 {
		log.Info("no pages to export")
		return result, nil
	}

	paths := make([]string, len(pages))
	errs := make([]*PageError, len(pages))

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, page := range pages {
		i, page := i, page
		paths[i] = filepath.Join(dir, FileName(i, len(pages), format))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = &PageError{Index: i, Path: paths[i], Op: "export", Err: err}
				return nil
			}
			errs[i] = writePage(strip, page, splitpoints, paths[i], format, opts)
			if errs[i] == nil {
				log.Debug("wrote page", "page", i+1, "path", paths[i], "rows", page.Height())
			}
			return nil
		})
	}
	_ = g.Wait()

	var batch BatchError
	for i := range pages {
		if errs[i] != nil {
			batch = append(batch, errs[i])
			continue
		}
		result.Files = append(result.Files, paths[i])
	}

	log.Info("exported pages", "written", len(result.Files), "failed", len(batch))
	if len(batch) > 0 {
		return result, batch
	}
	return result, nil
}

func writePage(strip *imaging.Strip, page detection.Page, splitpoints []detection.Splitpoint, path string, format Format, opts Options) *PageError {
	img, err := strip.Rows(page.Start, page.End)
	if err != nil {
		return &PageError{Index: page.Index, Path: path, Op: "slice", Err: err}
	}
	if opts.Debug {
		drawMarkers(img, page.Start, splitpoints, opts.CutColor, opts.SkipColor)
	}

	f, err := os.Create(path)
	if err != nil {
		return &PageError{Index: page.Index, Path: path, Op: "create", Err: err}
	}
	if err := format.Encode(f, img); err != nil {
		f.Close()
		return &PageError{Index: page.Index, Path: path, Op: "encode", Err: err}
	}
	if err := f.Close(); err != nil {
		return &PageError{Index: page.Index, Path: path, Op: "close", Err: err}
	}
	return nil
}

// lockDir takes an exclusive, non-blocking lock on dir. A directory that
// cannot hold the lock file is exported unlocked so that per-page create
// errors still surface.
func lockDir(dir string, log *slog.Logger) (func(), error) {
	path := filepath.Join(dir, LockFileName)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			log.Warn("cannot lock output directory, continuing unlocked", "error", err)
			return func() {}, nil
		}
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryBusy, dir)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release output directory lock", "error", err)
		}
		_ = os.Remove(path)
	}, nil
}
