package main

import (
	"github.com/spf13/cobra"

	"github.com/kmadof/mediare/internal/mcp"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve companion lookups as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// stdout is reserved for the MCP protocol; the logger writes to stderr
			a.logger.Info("mediare MCP server starting", "version", version, "built", buildTime)

			server, err := mcp.NewServer(a.cfg, a.logger)
			if err != nil {
				return err
			}

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Serve(ctx)
			}()

			select {
			case <-ctx.Done():
				a.logger.Info("shutting down", "reason", ctx.Err())
				return nil
			case err := <-errChan:
				if err != nil {
					return err
				}
			}

			a.logger.Info("server stopped")
			return nil
		},
	}
}
