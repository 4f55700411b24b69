package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"agrirevive-backend/internal/bootstrap"
	"agrirevive-backend/internal/shared/config"
	"agrirevive-backend/internal/shared/telemetry"
	"agrirevive-backend/internal/tool"
)

var version = "dev"

func main() {
	// stdout is the protocol stream
	telemetry.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildCore(config.Load())
	if err != nil {
		telemetry.Error("mcp.bootstrap_failed", map[string]any{"error": err})
		os.Exit(1)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "agrirevive", Version: version}, nil)
	advisors := &tool.Advisors{
		Fetcher:   app.Fetcher,
		Rotation:  app.Rotation,
		Medicines: app.Medicines,
		Places:    app.Geocoder,
	}
	advisors.Register(server)

	telemetry.Info("mcp.serving", map[string]any{"transport": "stdio"})
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		telemetry.Error("mcp.server_error", map[string]any{"error": err})
		os.Exit(1)
	}
}
