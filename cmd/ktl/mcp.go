package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unowned-ai/ktl/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [journal]",
	Short: "Run the ktl MCP server (stdio)",
	Long: `Load the journal and start a Model Context Protocol (MCP) server that
exposes it as tools via STDIO: ping, list_tables, query, list_exercises,
exercise_history and parse_sets.

The journal is loaded once at startup; restart the server to pick up edits.

Example:

  ktl mcp ~/training/journal.yaml 2> server.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, path, err := openStore(context.Background(), optionalArg(args, 0))
		if err != nil {
			return err
		}

		srv := mcp.NewKtlMCPServer(store, path)
		defer srv.Close()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "ktl MCP server started. Journal: %s (store %s)\n", srv.JournalPath, store.ID())
		fmt.Fprintf(os.Stderr, "Available tools: %s\n", strings.Join(mcp.ToolNames, ", "))
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}
