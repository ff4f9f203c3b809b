package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"timesheet-backend/internal/config"
	"timesheet-backend/internal/infrastructure/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Timesheet forms backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if log, err = logger.New(cfg.AppEnv); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.AddCommand(serveCmd(), migrateCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
