package middleware

import (
	"time"

	"github.com/eaglebank/signup-service/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const requestIDHeader = "X-Request-Id"

// LoggingMiddleware tags each request with an ID, injects a scoped logger into the
// request context and logs the outcome once the handler chain returns.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		log := logger.L().With(logger.RequestID(requestID))
		c.Request = c.Request.WithContext(logger.ToContext(c.Request.Context(), log))

		c.Next()

		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		if ce := log.Check(level, "request completed"); ce != nil {
			ce.Write(
				logger.Method(c.Request.Method),
				logger.Path(c.FullPath()),
				logger.Status(status),
				logger.Duration(time.Since(start)),
				logger.ClientIP(c.ClientIP()),
				zap.Int("bytes", c.Writer.Size()),
			)
		}
	}
}
