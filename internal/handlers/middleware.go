package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger logs every request with its status and duration. Paths under
// /telegram/ carry the webhook secret and are logged without it.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/telegram/") {
			path = "/telegram/:secret"
		}
		status := c.Writer.Status()

		evt := logger.Info()
		if status >= 500 {
			evt = logger.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("dur", time.Since(start)).
			Msg("http")
	}
}
