// Package mcpadapter exposes the gate as an MCP tool so agent
// runtimes can screen text without going through the HTTP API.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/legalaid/docgate/internal/core/ports"
)

type Server struct {
	gate      ports.DocumentGate
	mcpServer *server.MCPServer
}

func New(gate ports.DocumentGate, version string) *Server {
	m := server.NewMCPServer(
		"docgate",
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{gate: gate, mcpServer: m}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"evaluate_document",
		mcp.WithDescription("Decide whether a text is an admissible legal document. Returns the verdict with label, fused score and justification."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Plain text of the document to evaluate."),
		),
	), s.handleEvaluateDocument)
}

func (s *Server) handleEvaluateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verdict, err := s.gate.Evaluate(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluate document: %v", err)), nil
	}

	payload, err := json.Marshal(map[string]any{
		"outcome":       verdict.Outcome(),
		"label":         verdict.Label,
		"score":         verdict.Score,
		"escalated":     verdict.Escalated,
		"justification": verdict.Justification,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal verdict: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
