package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/quickstitch/internal/config"
	"github.com/ironsheep/quickstitch/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := prepare(cmd, ctx, func(*config.Config) {})
			if err != nil {
				return err
			}
			logger.Info("starting MCP server", "version", Version)
			return server.New(cfg, logger, Version).Run(cmd.Context())
		},
	}
}
