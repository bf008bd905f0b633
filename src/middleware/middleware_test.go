package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lifelog/src/config"
	"lifelog/src/middleware"
	"lifelog/src/security"
	"lifelog/src/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jwtService() service.JWTService {
	return service.NewJWTService(config.AuthConfig{JWTSecret: "middleware-secret", JWTExpiresIn: time.Hour})
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwtService()
	token, _, err := svc.GenerateAccessToken()
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", middleware.AuthMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.SubjectKey))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "有効なトークン", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: service.OwnerSubject},
		{name: "ヘッダーなし", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header required"},
		{name: "Bearer形式でない", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantBody: "Invalid authorization format"},
		{name: "トークンが空", header: "Bearer  ", wantStatus: http.StatusUnauthorized, wantBody: "Token is empty"},
		{name: "無効なトークン", header: "Bearer invalid", wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(origins string) *gin.Engine {
		r := gin.New()
		r.Use(middleware.CORSMiddleware(origins))
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("全許可", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://example.com")
		newRouter("*").ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
	})

	t.Run("許可リストのオリジンだけ返す", func(t *testing.T) {
		r := newRouter("http://localhost:3000, https://app.example.com")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://app.example.com")
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("プリフライト", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		newRouter("*").ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestLoggerMiddleware_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(middleware.RequestIDKey)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDKey, "client-id")
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-id", w.Header().Get(middleware.RequestIDKey))
}

func TestLoginGuard(t *testing.T) {
	limiter := security.NewMemoryAttemptLimiter(2, time.Minute)
	r := gin.New()
	r.POST("/login", middleware.LoginGuard(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	login := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	w := login()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-Attempts-Remaining"))

	ctx := context.Background()
	_, err := limiter.RegisterFailure(ctx, "192.0.2.1")
	require.NoError(t, err)
	_, err = limiter.RegisterFailure(ctx, "192.0.2.1")
	require.NoError(t, err)

	w = login()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "TOO_MANY_ATTEMPTS")
}

func TestSetRetryAfter_RoundsUp(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	middleware.SetRetryAfter(c, security.AttemptStatus{Locked: true, RetryAfter: 1500 * time.Millisecond})
	assert.Equal(t, "2", w.Header().Get("Retry-After"))

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	middleware.SetRetryAfter(c, security.AttemptStatus{})
	assert.Empty(t, w.Header().Get("Retry-After"))
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Metrics())
	r.GET("/api/todos/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/todos/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	middleware.SetStoreGeneration(7)
	middleware.SetDBConnectionsInUse(3)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	text := string(body)

	// パスはルートテンプレートで集計される
	assert.Contains(t, text, `lifelog_http_requests_total{method="GET",path="/api/todos/:id",status="200"}`)
	assert.Contains(t, text, `path="unmatched",status="404"`)
	assert.Contains(t, text, "lifelog_store_generation 7")
	assert.Contains(t, text, "lifelog_db_connections_in_use 3")
	assert.False(t, strings.Contains(text, `path="/metrics"`))
}
