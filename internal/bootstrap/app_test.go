package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmai-backend/internal/llm"
	"farmai-backend/internal/shared/config"
	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/storage/db"
)

func baseConfig() config.Config {
	return config.Config{
		Env:             "dev",
		CORSAllowOrigin: []string{"*"},
		LLMProvider:     "none",
		UpstreamTimeout: time.Second,
		CacheTTL:        time.Hour,
	}
}

func TestCacheTarget(t *testing.T) {
	cfg := baseConfig()
	driver, dsn := CacheTarget(cfg)
	assert.Empty(t, driver)
	assert.Empty(t, dsn)

	cfg.CacheSQLitePath = "/tmp/cache.db"
	driver, dsn = CacheTarget(cfg)
	assert.Equal(t, db.DriverSQLite, driver)
	assert.Equal(t, db.SQLiteDSN("/tmp/cache.db"), dsn)

	cfg.DatabaseURL = "postgres://localhost/farmai"
	driver, dsn = CacheTarget(cfg)
	assert.Equal(t, db.DriverPostgres, driver)
	assert.Equal(t, "postgres://localhost/farmai", dsn)
}

func TestBuildInMemory(t *testing.T) {
	app, err := Build(context.Background(), baseConfig())
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.IsType(t, &cache.MemoryCache{}, app.Cache)
	assert.IsType(t, llm.PlaceholderClient{}, app.LLM)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBuildSQLiteCache(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheSQLitePath = filepath.Join(t.TempDir(), "cache.db")

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.DB)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true,"cache":"sqlite"}`, resp.Body.String())

	sqlCache, ok := app.Cache.(*cache.SQLCache)
	require.True(t, ok)

	ctx := context.Background()
	require.NoError(t, sqlCache.Set(ctx, "k", []byte(`{"v":1}`), time.Minute))
	got, hit, err := sqlCache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.JSONEq(t, `{"v":1}`, string(got))
}

func TestBuildRequiresGeminiKeyOutsideDev(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.LLMProvider = "gemini"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}

func TestBuildDevWithoutKeyUsesPlaceholder(t *testing.T) {
	cfg := baseConfig()
	cfg.LLMProvider = "gemini"

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, llm.PlaceholderClient{}, app.LLM)
}

func TestBuildZeroTTLDisablesCache(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheTTL = 0

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, cache.Nop{}, app.Cache)
}
