package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет в лог каждый запрос. Приватные ошибки попадают только в лог, клиенту их не показываем.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "api")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"status":   status,
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}
		if account, ok := c.Get(CurrentAccountKey); ok {
			fields["account"] = account
		}
		if private := c.Errors.ByType(gin.ErrorTypePrivate); len(private) > 0 {
			fields["errors"] = private.String()
		}

		e := entry.WithFields(fields)
		switch {
		case status >= 500: //nolint:mnd
			e.Error("request failed")
		case status >= 400: //nolint:mnd
			e.Warn("request rejected")
		default:
			e.Info("request served")
		}
	}
}
