package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/jubiland/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Jubiland MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes mood entries,
celebrations and insights as MCP tools via STDIO.

The server uses the same storage flags as every other command. Logs go to stderr
so they never mix with the JSON-RPC stream on stdout.

Example:
  jubiland mcp
  jubiland mcp --data-dir ~/jubiland
  jubiland mcp --backend sqlite --db jubiland.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, where, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		srv := mcp.NewJubilandMCPServer(st, logger)

		fmt.Fprintf(os.Stderr, "Jubiland MCP server started (data: %s)\n", where)
		return srv.Start()
	},
}
