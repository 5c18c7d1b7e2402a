package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm"
	openai "career-backend/internal/llm/openai"
	"career-backend/internal/planner"
	"career-backend/internal/progress"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Issuer *auth.Issuer
	LLM    llm.Client
	Ledger *progress.Ledger

	UsersRepo       users.Repo
	UsersService    *users.Service
	PlanEngine      *planner.Engine
	ProgressService *progress.Service

	UsersHandler    *users.Handler
	PlanHandler     *planner.Handler
	ProgressHandler *progress.Handler
}

// Options lets callers and tests replace external collaborators.
type Options struct {
	LLM        llm.Client
	Rasterizer progress.Rasterizer
	DB         *sql.DB
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB := opts.DB
	if sqlDB == nil {
		var err error
		sqlDB, err = buildDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("session issuer: %w", err)
	}

	llmClient := opts.LLM
	if llmClient == nil {
		llmClient, err = buildLLM(cfg)
		if err != nil {
			return nil, err
		}
	}

	rasterizer := opts.Rasterizer
	if rasterizer == nil {
		png, err := progress.NewPNGRasterizer(cfg.ChartFontSize)
		if err != nil {
			return nil, fmt.Errorf("chart rasterizer: %w", err)
		}
		rasterizer = png
	}

	var userRepo users.Repo
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Issuer:    issuer,
		LLM:       llmClient,
		Ledger:    progress.NewLedger(),
		UsersRepo: userRepo,
	}
	app.UsersService = users.NewService(userRepo, cfg.AdminUsername, cfg.AdminPassword)
	app.PlanEngine = planner.NewEngine(llmClient, cfg.PlanDailyHours, cfg.PlanWeeklyHours)
	app.ProgressService = progress.NewService(app.Ledger, rasterizer)

	app.UsersHandler = users.NewHandler(app.UsersService, issuer, cfg.Env == "production")
	app.PlanHandler = planner.NewHandler(app.PlanEngine)
	app.ProgressHandler = progress.NewHandler(app.ProgressService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Issuer:          issuer,
		Health:          health.NewService(sqlDB),
		PlanHandler:     app.PlanHandler,
		ProgressHandler: app.ProgressHandler,
		UserHandler:     app.UsersHandler,
		PlanLimiter:     middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "", "none", "placeholder":
		return llm.PlaceholderClient{}, nil
	}
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider, "reason": "LLM_API_KEY empty"})
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("LLM_API_KEY is required for provider %q", cfg.LLMProvider)
	}

	var client llm.Client
	c, err := openai.NewClient(openai.Options{
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout(),
	})
	if err != nil {
		return nil, err
	}
	client = c
	if cfg.LLMRetry {
		client = llm.NewRetrying(client, cfg.LLMRetryDelay)
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
