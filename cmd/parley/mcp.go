package main

import (
	"log"
	"os"

	"github.com/aretw0/parley/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func (a *app) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts Parley as an MCP server over Standard Input/Output.
This allows AI agents to parse, render and search dialogue scripts as tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)

			srv := mcp.NewServer(
				mcp.WithLogger(a.logger),
				mcp.WithMaxScriptSize(a.cfg.MaxScriptSize),
			)
			a.logger.Info("Starting Parley MCP Server (Stdio)...")
			return srv.ServeStdio()
		},
	}
}
