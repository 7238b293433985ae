package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/app"
	"github.com/example/portfolio-admin/internal/config"
	"github.com/example/portfolio-admin/internal/core"
)

var (
	jsonOutput bool
	actor      string
	verbose    bool

	logger      *zap.Logger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:           "adminctl",
	Short:         "Maintenance commands for the portfolio admin backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger = zap.NewNop()
		if verbose {
			if logger, err = zap.NewDevelopment(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}

		initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		application, err = app.New(initCtx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		cmd.SetContext(core.WithActor(cmd.Context(), actor))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			if err := application.Close(); err != nil {
				logger.Warn("Error while releasing resources", zap.Error(err))
			}
		}
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", "adminctl", "user id recorded in audit logs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log backend activity to stderr")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(themeCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
