package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"potensidesa/internal/config"
	"potensidesa/internal/logger"
)

// @title Potensi Desa API
// @version 1.0
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a subcommand serves the portal.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "potensidesa",
		Short:         "Village potential portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newAdminCmd())
	return root
}

// bootstrap loads configuration and the process logger shared by every subcommand.
func bootstrap() (*config.AppConfig, *zap.Logger, error) {
	cfg := config.Load()
	log, err := logger.New(cfg.Development(), cfg.Location())
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
