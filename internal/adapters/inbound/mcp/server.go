package mcp

import (
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewCSVCheckMCPServer creates a new MCP server with all csvcheck tools and
// resources registered. cfg supplies the validation endpoint and state dir.
func NewCSVCheckMCPServer(cfg domain.Config, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"csvcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	svcs := newServices(cfg, logger.Named("mcp"))
	registerTools(s, svcs)
	registerResources(s, svcs)

	return s
}
