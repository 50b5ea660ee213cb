package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"formulator-backend/internal/shared/server/respond"
	"formulator-backend/internal/shared/telemetry"
)

const panicMessage = "Unexpected server error"

// Recovery turns a handler panic into 500 {"error"}. When the handler had
// already started writing, the response is only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"user_id":    UserIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			c.Set("errorCategory", "Panic")
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", panicMessage)
		}()
		c.Next()
	}
}
