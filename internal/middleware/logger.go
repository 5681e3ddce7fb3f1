package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baedyl/Loxea-api/internal/pkg/httperr"
	"github.com/baedyl/Loxea-api/internal/pkg/response"
)

// RequestLogger logs every request and converts panics into the standard
// 500 error envelope instead of killing the connection.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Error("panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
					zap.ByteString("stack", debug.Stack()),
				)
				response.Error(c, httperr.ServerError(err))
				return
			}

			fields := []zap.Field{
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.String("client_ip", c.ClientIP()),
				zap.Duration("latency", time.Since(start)),
			}
			if query := c.Request.URL.RawQuery; query != "" {
				fields = append(fields, zap.String("query", query))
			}
			for _, err := range c.Errors {
				fields = append(fields, zap.String("error", err.Error()))
			}

			switch {
			case c.Writer.Status() >= 500:
				log.Error("request failed", fields...)
			case c.Writer.Status() >= 400:
				log.Warn("request rejected", fields...)
			default:
				log.Info("request", fields...)
			}
		}()

		c.Next()
	}
}
