package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "raluma", Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "raluma",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency) }

// Metrics labels by route template so ids do not blow up cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
