package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/quickstitch/internal/config"
	"github.com/ironsheep/quickstitch/internal/export"
)

func newStitchCommand(ctx *commandContext) *cobra.Command {
	var (
		pipeline pipelineFlags
		output   string
		format   string
		quality  int
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "stitch [IMAGES...]",
		Short: "Stitch images into one strip and export it as pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.validateInputs(args); err != nil {
				return err
			}
			cfg, logger, err := prepare(cmd, ctx, func(cfg *config.Config) {
				pipeline.apply(cmd, cfg)
				flags := cmd.Flags()
				if flags.Changed("output") {
					cfg.Output.Dir = output
				}
				if flags.Changed("format") {
					cfg.Output.Format = format
				}
				if flags.Changed("quality") {
					cfg.Output.Quality = quality
				}
				if flags.Changed("debug") {
					cfg.Output.Debug = debug
				}
			})
			if err != nil {
				return err
			}

			outDir, err := config.ExpandPath(cfg.Output.Dir)
			if err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}
			if cfg.Output.CreateDir {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			fmtOut, err := cfg.ExportFormat()
			if err != nil {
				return err
			}
			opts, err := cfg.ExportOptions(logger)
			if err != nil {
				return err
			}

			stitched, err := pipeline.plan(cmd, args, cfg, logger)
			if err != nil {
				return err
			}

			result, err := stitched.Export(cmd.Context(), outDir, fmtOut, opts)
			var batch export.BatchError
			if errors.As(err, &batch) {
				stderr := cmd.ErrOrStderr()
				for _, pageErr := range batch {
					fmt.Fprintf(stderr, "  %v\n", pageErr)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Files) == 0 {
				fmt.Fprintln(out, "No pages to export")
				return nil
			}
			fmt.Fprintf(out, "Wrote %d page(s) to %s\n", len(result.Files), result.Dir)
			for _, file := range result.Files {
				fmt.Fprintf(out, "  %s\n", file)
			}
			return nil
		},
	}

	pipeline.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory")
	cmd.Flags().StringVar(&format, "format", "", "Output format (png, tiff, jpg)")
	cmd.Flags().IntVar(&quality, "quality", 0, "JPEG quality (1-100)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Draw cut and skipped rows onto the pages")

	return cmd
}
