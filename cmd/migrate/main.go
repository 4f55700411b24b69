package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status]

import (
	"context"
	"fmt"
	"os"

	"agrirevive-backend/internal/shared/config"
	"agrirevive-backend/internal/shared/storage/db"
	"agrirevive-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch action {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "status":
		err = db.MigrationStatus(ctx, sqlDB)
	default:
		err = fmt.Errorf("unknown action %q (want up, down or status)", action)
	}
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"action": action, "error": err})
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"action": action})
}
