package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/fxquery/internal/fixture"
	"github.com/funvibe/fxquery/internal/store"
)

var recordDB string

var recordCmd = &cobra.Command{
	Use:   "record <fixture.yaml>",
	Short: "Drain a fixture's responses into the query log",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordDB, "db", "", "Query log database (defaults to store.path)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	path, err := storePath(recordDB)
	if err != nil {
		return err
	}
	fx, err := fixture.Load(args[0], cfg, logger)
	if err != nil {
		return err
	}
	st, err := store.New(store.Config{Path: path})
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := fx.State.Flush(cmd.Context(), st)
	if err != nil {
		return err
	}
	logger.Info("recorded query responses", zap.Int("count", n), zap.String("db", path))
	fmt.Fprintf(cmd.OutOrStdout(), "recorded %d responses\n", n)
	return nil
}
