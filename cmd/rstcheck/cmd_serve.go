package main

import (
	"context"

	"github.com/spf13/cobra"

	"rstcheck/internal/logging"
	mcpserver "rstcheck/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type serveOpts struct {
	*rootOpts
}

func newServe(parent *rootOpts) *serveOpts {
	return &serveOpts{rootOpts: parent}
}

func (opts *serveOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Starts an MCP server over stdin/stdout exposing the compare_files and
run_suite tools. The server exits when its parent process goes away.`,
		Args: cobra.NoArgs,
		RunE: opts.RunE,
	}
}

func (opts *serveOpts) RunE(cmd *cobra.Command, _ []string) error {
	srv := mcpserver.NewServer(version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting rstcheck MCP server over stdio", "root", srv.Root)
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
