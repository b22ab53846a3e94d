package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	cacheAdapter "github.com/csvcheck/csvcheck/internal/adapters/outbound/cache"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/gitinfo"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/history"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/upstream"
	"github.com/csvcheck/csvcheck/internal/application"
	"github.com/csvcheck/csvcheck/internal/domain"
)

type services struct {
	validate *application.ValidateService
	logger   *zap.Logger
}

func newServices(cfg domain.Config, logger *zap.Logger) services {
	return services{
		validate: application.NewValidateService(
			upstream.NewValidator(cfg, logger),
			history.New(cfg.StateDir),
			cacheAdapter.New(cfg.StateDir),
			gitinfo.New(),
			logger,
		),
		logger: logger,
	}
}

// report is the JSON shape returned by the validate and parse tools.
type report struct {
	File      string             `json:"file,omitempty"`
	Checksum  string             `json:"checksum,omitempty"`
	Status    domain.StatusLevel `json:"status,omitempty"`
	FromCache bool               `json:"from_cache,omitempty"`
	Blocks    []domain.Block     `json:"blocks"`
}

// registerTools registers all csvcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, svcs services) {
	// 1. csvcheck_validate
	s.AddTool(
		mcplib.NewTool("csvcheck_validate",
			mcplib.WithDescription("Upload a local CSV or TXT file to the validation service and return the status and display blocks as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the .csv or .txt file to validate"),
			),
			mcplib.WithBoolean("use_cache",
				mcplib.Description("Reuse the stored response when the file bytes are unchanged"),
			),
		),
		handleValidate(svcs),
	)

	// 2. csvcheck_parse
	s.AddTool(
		mcplib.NewTool("csvcheck_parse",
			mcplib.WithDescription("Parse a raw validation response text into status and display blocks without calling the service"),
			mcplib.WithString("text",
				mcplib.Required(),
				mcplib.Description("Response text as returned by the validation service"),
			),
		),
		handleParse(),
	)

	// 3. csvcheck_history
	s.AddTool(
		mcplib.NewTool("csvcheck_history",
			mcplib.WithDescription("Returns past validation runs as JSON"),
		),
		handleHistory(svcs),
	)
}

func handleValidate(svcs services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if !domain.HasAcceptedExtension(path) {
			return errorResult(fmt.Sprintf("unsupported file type %q: only .csv and .txt are accepted", filepath.Ext(path))), nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errorResult(fmt.Sprintf("reading file: %v", err)), nil
		}

		upload := domain.Upload{Name: filepath.Base(path), Path: path, ContentType: "text/csv", Data: data}
		opts := application.ValidateOptions{UseCache: request.GetBool("use_cache", false)}

		run, err := svcs.validate.Validate(ctx, upload, opts)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(report{
			File:      run.FileName,
			Checksum:  run.Checksum,
			Status:    run.Status(),
			FromCache: run.FromCache,
			Blocks:    run.Blocks,
		})
	}
}

func handleParse() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		resp := domain.ParseResponse(text)
		return jsonResult(report{
			Status: resp.Status,
			Blocks: domain.BuildBlocks(resp),
		})
	}
}

func handleHistory(svcs services) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := svcs.validate.History()
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if len(entries) == 0 {
			return textResult("No validation history found."), nil
		}
		return jsonResult(entries)
	}
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
