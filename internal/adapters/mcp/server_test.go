package mcpadapter

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/legalaid/docgate/internal/core/domain"
)

type gateFake struct {
	verdict domain.Verdict
}

func (f *gateFake) Evaluate(context.Context, string) (domain.Verdict, error) {
	return f.verdict, nil
}

func TestEvaluateDocumentTool(t *testing.T) {
	srv := New(&gateFake{verdict: domain.Verdict{
		Accepted: true,
		Label:    "legal contract",
		Score:    0.82,
	}}, "test")

	c, err := client.NewInProcessClient(srv.mcpServer)
	if err != nil {
		t.Fatalf("NewInProcessClient: %v", err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test", Version: "0"}
	if _, err := c.Initialize(context.Background(), initReq); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	toolsResp, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(toolsResp.Tools) != 1 || toolsResp.Tools[0].Name != "evaluate_document" {
		t.Fatalf("unexpected tools: %+v", toolsResp.Tools)
	}

	call := mcp.CallToolRequest{}
	call.Params.Name = "evaluate_document"
	call.Params.Arguments = map[string]any{"text": "WHEREAS the parties agree"}
	res, err := c.CallTool(context.Background(), call)
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("expected content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	if !strings.Contains(text.Text, `"outcome":"accepted"`) || !strings.Contains(text.Text, "legal contract") {
		t.Fatalf("unexpected tool result: %s", text.Text)
	}
}

func TestEvaluateDocumentToolRequiresText(t *testing.T) {
	srv := New(&gateFake{}, "test")

	req := mcp.CallToolRequest{}
	req.Params.Name = "evaluate_document"
	res, err := srv.handleEvaluateDocument(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if res == nil || !res.IsError {
		t.Fatalf("expected tool error for missing text argument")
	}
}
