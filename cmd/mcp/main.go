package main

import (
	"log"
	"log/slog"

	mcpadapter "github.com/legalaid/docgate/internal/adapters/mcp"
	"github.com/legalaid/docgate/internal/bootstrap"
	"github.com/legalaid/docgate/internal/config"
	"github.com/legalaid/docgate/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol; route logs to stderr.
	slog.SetDefault(logging.NewStderrJSONLogger("docgate-mcp", cfg.LogLevel))

	gate, err := bootstrap.NewGate(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	if err := mcpadapter.New(gate, version).ServeStdio(); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
