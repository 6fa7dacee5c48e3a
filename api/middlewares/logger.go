package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jvjruiz/schedule-bot/logger"
)

type RequestLogger interface {
	Middleware() gin.HandlerFunc
}

type RequestLoggerImpl struct {
	logger logger.Logger
}

func NewRequestLogger(logger logger.Logger) (RequestLogger, error) {
	return &RequestLoggerImpl{
		logger: logger,
	}, nil
}

func (r *RequestLoggerImpl) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		r.logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
