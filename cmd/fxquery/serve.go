package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/fixture"
	"github.com/funvibe/fxquery/internal/lsp"
)

var serveCmd = &cobra.Command{
	Use:   "serve <fixture.yaml>",
	Short: "Answer LSP hover and definition requests on stdio",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	config.IsLSPMode = true
	fx, err := fixture.Load(args[0], cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("serving query responses", zap.String("fixture", args[0]), zap.Int("responses", len(fx.Responses)))

	srv := lsp.NewServer(fx.State, fx.Responses, cmd.OutOrStdout(), logger)
	return srv.Serve(cmd.InOrStdin())
}
