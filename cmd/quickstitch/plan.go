package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/quickstitch/internal/config"
	"github.com/ironsheep/quickstitch/internal/detection"
	"github.com/ironsheep/quickstitch/internal/logging"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var pipeline pipelineFlags

	cmd := &cobra.Command{
		Use:   "plan [IMAGES...]",
		Short: "Show where the strip would be cut without writing pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.validateInputs(args); err != nil {
				return err
			}
			cfg, logger, err := prepare(cmd, ctx, func(cfg *config.Config) {
				pipeline.apply(cmd, cfg)
			})
			if err != nil {
				return err
			}

			stitched, err := pipeline.plan(cmd, args, cfg, logger)
			if err != nil {
				return err
			}

			strip := stitched.Strip()
			pages := stitched.Pages()
			skipped := 0
			for _, sp := range stitched.Splitpoints() {
				if sp.Kind == detection.KindSkipped {
					skipped++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Strip %dx%d from %d source(s)\n", strip.Width(), strip.Height(), len(strip.Sources()))
			if len(pages) == 0 {
				fmt.Fprintln(out, "No pages")
				return nil
			}

			rows := make([][]string, 0, len(pages))
			for i, page := range pages {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(page.Start),
					strconv.Itoa(page.End),
					strconv.Itoa(page.Height()),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Page", "Start", "End", "Height"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
				logging.IsTerminal(out),
			))
			fmt.Fprintf(out, "%d page(s), %d skipped row(s)\n", len(pages), skipped)
			return nil
		},
	}

	pipeline.register(cmd)
	return cmd
}
