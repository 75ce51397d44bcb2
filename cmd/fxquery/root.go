package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fxquery",
	Short: "Inspect funxy query responses",
	Long: `fxquery loads query responses (what the type checker knows about a source
position) from fixture files, renders them the way an editor would see them,
and keeps a log of them in a SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger, err = logging.New(cfg.Log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "fxquery.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func storePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg == nil || cfg.Store.Path == "" {
		return "", fmt.Errorf("no query log configured (use --db)")
	}
	return cfg.Store.Path, nil
}
