package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	jubiland "github.com/unowned-ai/jubiland/pkg"
	"github.com/unowned-ai/jubiland/pkg/store"
)

// ToolNames lists every tool registered by RegisterAllTools.
var ToolNames = []string{
	"ping",
	"log_mood", "list_mood_entries", "update_mood_entry", "delete_mood_entry",
	"add_celebration", "list_celebrations", "update_celebration", "delete_celebration", "toggle_star_celebration",
	"get_insights",
}

type JubilandMCPServer struct {
	mcpServer *server.MCPServer
	store     *store.Store
	logger    *zap.Logger
}

// NewJubilandMCPServer builds an MCP server exposing st through every
// Jubiland tool. The caller keeps ownership of st.
func NewJubilandMCPServer(st *store.Store, logger *zap.Logger) *JubilandMCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"Jubiland MCP Server",
		jubiland.Version,
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterAllTools(s, st)

	return &JubilandMCPServer{
		mcpServer: s,
		store:     st,
		logger:    logger.Named("mcp"),
	}
}

// RegisterAllTools registers the ping, mood, celebration and insights tools.
func RegisterAllTools(s *server.MCPServer, st *store.Store) {
	RegisterPingTool(s)

	RegisterLogMoodTool(s, st)
	RegisterListMoodEntriesTool(s, st)
	RegisterUpdateMoodEntryTool(s, st)
	RegisterDeleteMoodEntryTool(s, st)

	RegisterAddCelebrationTool(s, st)
	RegisterListCelebrationsTool(s, st)
	RegisterUpdateCelebrationTool(s, st)
	RegisterDeleteCelebrationTool(s, st)
	RegisterToggleStarCelebrationTool(s, st)

	RegisterGetInsightsTool(s, st)
}

// Start runs the stdio event loop until stdin closes.
func (s *JubilandMCPServer) Start() error {
	s.logger.Info("listening for MCP JSON-RPC on stdin/stdout", zap.Strings("tools", ToolNames))

	// Log store writes that fail; tool results only report the in-memory change.
	unsubscribe := s.store.Subscribe(func(c store.Change) {
		if c.SaveErr != nil {
			s.logger.Warn("change not persisted",
				zap.String("collection", string(c.Collection)),
				zap.String("op", string(c.Op)),
				zap.Stringer("id", c.ID),
				zap.Error(c.SaveErr),
			)
		}
	})
	defer unsubscribe()

	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *JubilandMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
