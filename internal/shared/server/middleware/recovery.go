package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-jobmatch/internal/shared/server/respond"
	"resume-jobmatch/internal/shared/telemetry"
)

// Recovery turns a panic into a 500 with a generic message. The cause is
// logged only. A request that was mid-intake is marked failed so the access
// log shows where it stopped.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}
			if stage := c.GetString("intakeStage"); stage != "" {
				fields["failed_after"] = stage
				c.Set("intakeStage", "failed")
			}
			telemetry.Error("panic", fields)
			respond.Error(c, http.StatusInternalServerError, "internal", "Server error", "")
		}()
		c.Next()
	}
}
