package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"agrirevive-backend/internal/bootstrap"
	"agrirevive-backend/internal/cli"
	"agrirevive-backend/internal/shared/config"
	"agrirevive-backend/internal/shared/telemetry"
)

var version = "dev"

func main() {
	// stdout carries command output
	telemetry.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(version, func() (*bootstrap.App, error) {
		return bootstrap.BuildCore(config.Load())
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
