package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"raluma-api/internal/domain"
	"raluma-api/internal/transport/http/ez"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	from := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		return serve(r, req).Code
	}
	require.Equal(t, http.StatusOK, from("10.0.0.1:1000"))
	require.Equal(t, http.StatusOK, from("10.0.0.1:1001"))
	require.Equal(t, http.StatusTooManyRequests, from("10.0.0.1:1002"))
	require.Equal(t, http.StatusOK, from("10.0.0.2:1000"))
}

func TestIdleBucketsAreEvicted(t *testing.T) {
	l := newIPLimiters(1, 1)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	require.True(t, l.allow("10.0.0.1"))
	require.False(t, l.allow("10.0.0.1"))
	require.True(t, l.allow("10.0.0.2"))
	require.Equal(t, 2, l.size())

	now = now.Add(30 * time.Second)
	require.True(t, l.allow("10.0.0.2"))

	// both earlier buckets have been idle a full window by this sweep
	now = now.Add(l.idle)
	require.True(t, l.allow("10.0.0.3"))
	require.Equal(t, 1, l.size())

	for i := 0; i < 1000; i++ {
		now = now.Add(l.idle)
		l.allow(fmt.Sprintf("10.1.%d.%d", i/256, i%256))
	}
	require.Equal(t, 1, l.size())
}

func TestConcurrencyLimitGivesUpWithContext(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	r.GET("/", func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})

	done := make(chan int)
	go func() { done <- serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code }()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	busy := serve(r, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	require.Equal(t, http.StatusServiceUnavailable, busy.Code)

	close(release)
	require.Equal(t, http.StatusOK, <-done)
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(16))
	r.POST("/", func(c *gin.Context) {
		var in map[string]string
		if err := c.ShouldBindJSON(&in); err != nil {
			ez.Abort(c, ez.BadRequest(err.Error()))
			return
		}
		c.Status(http.StatusOK)
	})

	ok := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"b"}`)))
	require.Equal(t, http.StatusOK, ok.Code)

	big := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`)))
	require.Equal(t, http.StatusBadRequest, big.Code)
	require.Contains(t, big.Body.String(), "request body too large")
}

func TestTimeoutWritesGatewayTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) { <-c.Request.Context().Done() })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	w := serve(r, req)
	require.Equal(t, "abc", w.Header().Get(KeyRequestID))
	require.Equal(t, "abc", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestAccessLogMasksSecretsAndLevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { ez.Abort(c, domain.ErrNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok?token=s3cret&q=1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, map[string][]string{"token": {"****"}, "q": {"1"}}, entries[0].ContextMap()["query"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
}

type resolverFunc func(ctx context.Context, token string) (domain.Identity, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	return f(ctx, token)
}

func TestAuthJWT(t *testing.T) {
	r := gin.New()
	r.Use(AuthJWT(resolverFunc(func(_ context.Context, token string) (domain.Identity, error) {
		if token != "good" {
			return domain.Identity{}, domain.ErrTokenInvalid
		}
		return domain.Identity{ID: "u1", Role: domain.RoleUser, IsActive: true}, nil
	})))
	r.GET("/", func(c *gin.Context) {
		id, ok := ez.Identity(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.ID)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u1", w.Body.String())
}
