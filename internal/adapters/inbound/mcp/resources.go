package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/csvcheck/csvcheck/internal/domain"
)

const historyURI = "csvcheck://history"

// registerResources registers all csvcheck MCP resources on the given server.
func registerResources(s *server.MCPServer, svcs services) {
	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Validation History",
			mcplib.WithResourceDescription("Past validation runs with status or error"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(svcs),
	)
}

func handleHistoryResource(svcs services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := svcs.validate.History()
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      historyURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
