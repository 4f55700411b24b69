package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/aqi"
	"agrirevive-backend/internal/geocode"
	"agrirevive-backend/internal/history"
	"agrirevive-backend/internal/llm"
	"agrirevive-backend/internal/llm/groq"
	"agrirevive-backend/internal/medicines"
	"agrirevive-backend/internal/recommend"
	"agrirevive-backend/internal/rotation"
	"agrirevive-backend/internal/services/health"
	"agrirevive-backend/internal/shared/auth"
	"agrirevive-backend/internal/shared/config"
	"agrirevive-backend/internal/shared/server"
	"agrirevive-backend/internal/shared/storage/db"
	"agrirevive-backend/internal/shared/telemetry"
	"agrirevive-backend/internal/users"
)

// App owns every long-lived dependency. Nothing in the service packages is
// process-global; commands build one App and pass its parts around.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	LLM       llm.Client
	Tokens    *auth.Codec
	Fetcher   *recommend.Fetcher
	Medicines *medicines.Service
	Rotation  *rotation.Advisor
	Geocoder  *geocode.Client
	History   *history.Service
	Users     *users.Service
	Health    *health.Service
}

// BuildCore prepares the advisors without a database or router. The CLI and
// the MCP server use it.
func BuildCore(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)

	table, err := recommend.LoadTable(cfg.FallbackTablePath)
	if err != nil {
		return nil, fmt.Errorf("fallback table: %w", err)
	}
	crops, err := rotation.DefaultTable()
	if err != nil {
		return nil, fmt.Errorf("crop table: %w", err)
	}
	client, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		LLM:       client,
		Fetcher:   recommend.NewFetcher(client, table, cfg.LLMTimeout),
		Medicines: medicines.NewService(client, cfg.LLMTimeout),
		Rotation:  rotation.NewAdvisor(crops),
		Geocoder:  geocode.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent),
	}, nil
}

// Build prepares the full API: core advisors, persistence and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := BuildCore(cfg)
	if err != nil {
		return nil, err
	}
	cfg = app.Config

	tokens, err := auth.NewCodec(cfg.JWTSecret, config.IsDevLike(cfg.Env))
	if err != nil {
		return nil, err
	}
	app.Tokens = tokens

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	var historyRepo history.Repo
	var userRepo users.Repo
	if sqlDB != nil {
		historyRepo = &history.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		historyRepo = history.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}
	app.History = history.NewService(historyRepo)
	app.Users = users.NewService(userRepo)
	app.Health = health.NewService(0, app.healthChecks()...)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Verifier: tokens,
		Handlers: []server.Registrar{
			health.NewHandler(app.Health),
			recommend.NewHandler(app.Fetcher, app.History),
			rotation.NewHandler(app.Rotation, app.History),
			medicines.NewHandler(app.Medicines, app.History),
			geocode.NewHandler(app.Geocoder),
			aqi.NewHandler(),
			history.NewHandler(app.History),
			users.NewHandler(app.Users),
		},
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{
			"detail": "GROQ_API_KEY empty; recommendations will use fallback data",
		})
		return llm.PlaceholderClient{}, nil
	}
	return groq.NewClient(cfg.LLMAPIKey, cfg.LLMModel,
		groq.WithURL(cfg.LLMURL),
		groq.WithTimeout(cfg.LLMTimeout),
	)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	devLike := config.IsDevLike(cfg.Env)
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if devLike {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			sqlDB = nil
		}
	}
	if err != nil {
		if devLike {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func (a *App) healthChecks() []health.Check {
	checks := []health.Check{
		{
			Name: "llm",
			// without a key every recommendation is served from the fallback table
			Optional: true,
			Probe: func(context.Context) error {
				if _, ok := a.LLM.(llm.PlaceholderClient); ok {
					return llm.ErrNotConfigured
				}
				return nil
			},
		},
	}
	if a.DB != nil {
		checks = append(checks, health.Check{
			Name: "database",
			Probe: func(ctx context.Context) error {
				return db.Ping(ctx, a.DB, 0)
			},
		})
	}
	return checks
}
