package main

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/parley/internal/config"
	"github.com/aretw0/parley/internal/logging"
	"github.com/spf13/cobra"
)

// app carries the configuration shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "parley",
		Short: "Parley is a plain-text dialogue script toolkit",
		Long: `Parley parses, renders and inspects branching dialogue written as plain text:
one line per dialogue line, mutation, comment or goto, and one line per player response.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default from PARLEY_LOG_LEVEL)")

	rootCmd.AddCommand(
		a.newParseCmd(),
		a.newRenderCmd(),
		a.newShowCmd(),
		a.newGraphCmd(),
		a.newValidateCmd(),
		a.newLinksCmd(),
		a.newFilterCmd(),
		a.newServeCmd(),
		a.newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	a.cfg = cfg
	a.logger = logging.New(level)
	slog.SetDefault(a.logger)
	return nil
}
