package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/closetscout/backend/config"
	"github.com/closetscout/backend/internal/app"
	"github.com/closetscout/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string

	stack *app.App
	log   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "closetscout-search",
	Short:         "closetscout-search queries the configured clothing stores from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log, err = logger.New(cfg.Server.Environment, logLevel)
		if err != nil {
			return err
		}

		stack, err = app.New(cfg, log)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level written to stderr")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
