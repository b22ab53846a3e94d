package cli

import (
	mcpadapter "github.com/csvcheck/csvcheck/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the csvcheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start csvcheck MCP server (stdio)",
		Long:  "Start the csvcheck MCP server using stdio transport. This lets AI assistants validate CSV files, parse responses and read run history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			s := mcpadapter.NewCSVCheckMCPServer(cfg, opts.logger)
			return server.ServeStdio(s)
		},
	}

	return cmd
}
