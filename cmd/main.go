package main

import (
	"log/slog"
	"os"

	"loan-offers/internal/config"
	"loan-offers/internal/infrastructure/logging"

	"github.com/spf13/cobra"
)

// @title Loan Offers API
// @version 1.0
// @description Customers, loan offers and a monthly payment calculator.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "loan-offers",
		Short:         "Loan offers service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "Directory containing config.yml")

	rootCmd.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
	)
	return rootCmd
}

func (a *app) initialize(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err, "path", configPath)
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(cfg.Logger)
	a.logger.Info("Configuration loaded", "path", configPath)
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
