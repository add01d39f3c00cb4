package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"farmai-backend/internal/shared/server/respond"
	"farmai-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 "internal" envelope.
// The panic is logged with the analysis id or agent name when the handler set one.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      c.FullPath(),
				"panic":      rec,
				"stack":      string(debug.Stack()),
			}
			for _, key := range []string{"analysisId", "agent"} {
				if v, ok := c.Get(key); ok {
					fields[key] = v
				}
			}
			telemetry.Error("request.panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
