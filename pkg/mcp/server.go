package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	ktl "github.com/unowned-ai/ktl/pkg"
	"github.com/unowned-ai/ktl/pkg/journal"
)

// ToolNames lists every tool RegisterTools adds, in registration order.
var ToolNames = []string{"ping", "list_tables", "query", "list_exercises", "exercise_history", "parse_sets"}

type KtlMCPServer struct {
	mcpServer   *server.MCPServer
	store       *journal.Store
	JournalPath string
}

// NewKtlMCPServer wraps a loaded store in an MCP server with every tool
// registered. The server owns the store from here on.
func NewKtlMCPServer(store *journal.Store, journalPath string) *KtlMCPServer {
	s := server.NewMCPServer(
		"ktl MCP Server",
		ktl.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)

	RegisterTools(s, store)

	return &KtlMCPServer{
		mcpServer:   s,
		store:       store,
		JournalPath: journalPath,
	}
}

// RegisterTools adds all ktl tools backed by store to s.
func RegisterTools(s *server.MCPServer, store *journal.Store) {
	RegisterPingTool(s)
	RegisterListTablesTool(s, store)
	RegisterQueryTool(s, store)
	RegisterListExercisesTool(s, store)
	RegisterExerciseHistoryTool(s, store)
	RegisterParseSetsTool(s)
}

// Start runs the stdio event loop.
func (s *KtlMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// Store returns the journal store the tools read from.
func (s *KtlMCPServer) Store() *journal.Store {
	return s.store
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *KtlMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close releases the store.
func (s *KtlMCPServer) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
