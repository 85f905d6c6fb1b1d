package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var sensitiveKeys = map[string]struct{}{
	"password": {}, "pwd": {}, "token": {}, "authorization": {},
	"secret": {}, "client_secret": {}, "access_token": {},
}

func maskQuery(kv map[string][]string) map[string][]string {
	out := make(map[string][]string, len(kv))
	for k, v := range kv {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			out[k] = []string{"****"}
		} else {
			out[k] = v
		}
	}
	return out
}

// AccessLog writes one line per request. Server errors attached with
// c.Error are logged at error level.
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Any("query", maskQuery(c.Request.URL.Query())),
			zap.Int("size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		switch {
		case status >= 500:
			l.Error("HTTP", fields...)
		case status >= 400:
			l.Warn("HTTP", fields...)
		default:
			l.Info("HTTP", fields...)
		}
	}
}
