package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/quickstitch/internal/config"
	"github.com/ironsheep/quickstitch/internal/stitcher"
)

// pipelineFlags holds the input and split flags shared by stitch and plan.
type pipelineFlags struct {
	dir          string
	sort         string
	width        int
	maxHeight    int
	minHeight    int
	scanInterval int
	sensitivity  int
	workers      int
	strict       bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.dir, "dir", "", "Directory of source images")
	flags.StringVarP(&f.sort, "sort", "s", "", "Directory ordering (natural, logical)")
	flags.IntVar(&f.width, "width", 0, "Target strip width (0 = smallest source width)")
	flags.IntVar(&f.maxHeight, "max-height", 0, "Maximum page height in pixels")
	flags.IntVar(&f.minHeight, "min-height", 0, "Minimum page height in pixels")
	flags.IntVar(&f.scanInterval, "scan-interval", 0, "Rows between scan samples")
	flags.IntVar(&f.sensitivity, "sensitivity", 0, "Roughness tolerance (0-255)")
	flags.IntVar(&f.workers, "workers", 0, "Decode and encode workers (0 = one per CPU)")
	flags.BoolVar(&f.strict, "strict", false, "Fail on unloadable images instead of skipping them")
}

// apply overlays the flags the user set explicitly onto cfg.
func (f *pipelineFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("sort") {
		cfg.Input.Sort = strings.ToLower(strings.TrimSpace(f.sort))
	}
	if flags.Changed("width") {
		cfg.Input.Width = f.width
	}
	if flags.Changed("max-height") {
		cfg.Split.MaxHeight = f.maxHeight
	}
	if flags.Changed("min-height") {
		cfg.Split.MinHeight = f.minHeight
	}
	if flags.Changed("scan-interval") {
		cfg.Split.ScanInterval = f.scanInterval
	}
	if flags.Changed("sensitivity") {
		cfg.Split.Sensitivity = f.sensitivity
	}
	if flags.Changed("workers") {
		cfg.Workers.Count = f.workers
	}
	if flags.Changed("strict") {
		cfg.Input.IgnoreUnloadable = !f.strict
	}
}

func (f *pipelineFlags) validateInputs(args []string) error {
	hasDir := strings.TrimSpace(f.dir) != ""
	switch {
	case hasDir && len(args) > 0:
		return errors.New("pass either image paths or --dir, not both")
	case !hasDir && len(args) == 0:
		return errors.New("no input: pass image paths or --dir")
	}
	return nil
}

// plan loads the inputs and runs the splitpoint scan.
func (f *pipelineFlags) plan(cmd *cobra.Command, args []string, cfg *config.Config, logger *slog.Logger) (*stitcher.Stitched, error) {
	ctx := cmd.Context()
	s := stitcher.New(logger)

	var (
		loaded *stitcher.Loaded
		err    error
	)
	if dir := strings.TrimSpace(f.dir); dir != "" {
		dir, err = config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve --dir: %w", err)
		}
		loaded, err = s.LoadDir(ctx, dir, cfg.SortMode(), cfg.LoadOptions(logger))
	} else {
		loaded, err = s.Load(ctx, args, cfg.LoadOptions(logger))
	}
	if err != nil {
		return nil, err
	}
	return loaded.Stitch(cfg.SplitOptions())
}

// prepare resolves config, applies overrides, and builds the logger.
func prepare(cmd *cobra.Command, ctx *commandContext, apply func(*config.Config)) (*config.Config, *slog.Logger, error) {
	base, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	cfg := *base
	apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := ctx.logger(cmd, &cfg)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, logger, nil
}
