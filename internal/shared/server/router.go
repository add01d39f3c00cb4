package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmai-backend/internal/agents"
	"farmai-backend/internal/analysis"
	"farmai-backend/internal/chat"
	"farmai-backend/internal/services/health"
	"farmai-backend/internal/shared/config"
	"farmai-backend/internal/shared/metrics"
	"farmai-backend/internal/shared/server/middleware"
	"farmai-backend/internal/shared/server/respond"
)

// RouterDeps holds the handlers mounted under /api.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analysis.Handler
	AgentsHandler   *agents.Handler
	ChatHandler     *chat.Handler
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, "")
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Live())
	})
	api.GET("/ready", func(c *gin.Context) {
		st := healthSvc.Ready(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.AgentsHandler != nil {
		deps.AgentsHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
