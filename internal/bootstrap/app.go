// Package bootstrap wires configuration into services, handlers, and the router.
package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"farmai-backend/internal/agents"
	"farmai-backend/internal/analysis"
	"farmai-backend/internal/chat"
	"farmai-backend/internal/elevation"
	"farmai-backend/internal/geocode"
	"farmai-backend/internal/llm"
	"farmai-backend/internal/llm/gemini"
	"farmai-backend/internal/openmeteo"
	"farmai-backend/internal/services/health"
	"farmai-backend/internal/shared/config"
	"farmai-backend/internal/shared/server"
	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/storage/db"
	"farmai-backend/internal/shared/telemetry"
	"farmai-backend/internal/shared/upstream"
)

const memoryCacheCleanup = 10 * time.Minute

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sqlx.DB
	Cache    cache.Cache
	Upstream *upstream.Client
	LLM      llm.Client

	Weather   *openmeteo.Client
	Elevation *elevation.Client
	Geocoder  *geocode.Client

	AnalysisService *analysis.Service
	AgentsService   *agents.Service
	ChatService     *chat.Service

	AnalysisHandler *analysis.Handler
	AgentsHandler   *agents.Handler
	ChatHandler     *chat.Handler
	Health          *health.Service
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Cache:  buildCache(cfg, sqlDB),
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		AgentsHandler:   app.AgentsHandler,
		ChatHandler:     app.ChatHandler,
		Health:          app.Health,
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

// CacheTarget returns the driver and DSN for the SQL cache, or empty strings
// when the in-memory cache should be used.
func CacheTarget(cfg config.Config) (driver, dsn string) {
	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		return db.DriverPostgres, cfg.DatabaseURL
	case strings.TrimSpace(cfg.CacheSQLitePath) != "":
		return db.DriverSQLite, db.SQLiteDSN(cfg.CacheSQLitePath)
	default:
		return "", ""
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	driver, dsn := CacheTarget(cfg)
	if driver == "" {
		telemetry.Info("bootstrap.cache", map[string]any{"backend": "memory"})
		return nil, nil
	}

	opts := db.DefaultServerOptions()
	if driver == db.DriverSQLite {
		opts = db.DefaultSQLiteOptions()
	}
	sqlDB, err := db.Connect(ctx, driver, dsn, db.OptionsFromEnv(opts))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.cache_fallback", map[string]any{
				"backend": driver,
				"error":   err,
			})
			return nil, nil
		}
		return nil, err
	}

	telemetry.Info("bootstrap.cache", map[string]any{"backend": driver})
	return sqlDB, nil
}

func buildCache(cfg config.Config, sqlDB *sqlx.DB) cache.Cache {
	if cfg.CacheTTL <= 0 {
		return cache.Nop{}
	}
	if sqlDB != nil {
		return cache.NewSQLCache(sqlDB)
	}
	return cache.NewMemoryCache(cfg.CacheTTL, memoryCacheCleanup)
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "gemini" {
		return llm.PlaceholderClient{}, nil
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_disabled", map[string]any{"reason": "GEMINI_API_KEY empty"})
			return llm.PlaceholderClient{}, nil
		}
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		return nil, err
	}
	return llm.WithRetry(client), nil
}

func buildServices(app *App) {
	cfg := app.Config
	app.Upstream = upstream.New(cfg.UpstreamTimeout, cfg.UserAgent, app.Cache, cfg.CacheTTL)
	app.Weather = openmeteo.NewClient(app.Upstream, cfg.OpenMeteoURL, cfg.OpenMeteoArchiveURL)
	app.Elevation = elevation.NewClient(app.Upstream, cfg.OpenElevationURL)
	app.Geocoder = geocode.NewClient(app.Upstream, cfg.NominatimURL)

	app.AnalysisService = analysis.NewService(app.Weather, app.Elevation, app.Geocoder)
	app.AgentsService = agents.NewService(app.LLM)
	app.ChatService = chat.NewService(app.LLM)

	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService)
	app.AgentsHandler = agents.NewHandler(app.AgentsService)
	app.ChatHandler = chat.NewHandler(app.ChatService)

	if app.DB != nil {
		app.Health = health.NewService(app.DB, app.DB.DriverName())
	} else {
		app.Health = health.NewService(nil, "")
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
