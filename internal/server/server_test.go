package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gogotex/docsign/internal/config"
	"github.com/gogotex/docsign/internal/document/repository"
	"github.com/gogotex/docsign/internal/document/service"
	"github.com/gogotex/docsign/pkg/metrics"
	"github.com/gogotex/docsign/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "8080", Host: "127.0.0.1"},
		Documents: config.DocumentsConfig{Seed: true},
		Redis:     config.RedisConfig{Port: "6379"},
	}
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_EndToEnd(t *testing.T) {
	r := NewRouter(testConfig(), service.NewMemoryService(repository.WithSeed()), Options{})

	w := serve(t, r, http.MethodPost, "/api/documents", `{"content":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "doc-4", doc["id"])
	require.Equal(t, "hello", doc["content"])
	require.Nil(t, doc["signature"])

	w = serve(t, r, http.MethodPut, "/api/documents/doc-4/sign", `{"signature":"abc"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Document signed successfully"}`, w.Body.String())

	w = serve(t, r, http.MethodPut, "/api/documents/doc-4/sign", `{"signature":"abc"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Document not found or already signed"}`, w.Body.String())

	w = serve(t, r, http.MethodPost, "/api/documents", `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, r, http.MethodPut, "/api/documents/doc-1/sign", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"Signature is required"}`, w.Body.String())
}

func TestRouter_PreflightSkipsRoutes(t *testing.T) {
	r := NewRouter(testConfig(), service.NewMemoryService(), Options{})
	w := serve(t, r, http.MethodOptions, "/api/documents/doc-1/sign", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_HealthAndReady(t *testing.T) {
	r := NewRouter(testConfig(), service.NewMemoryService(repository.WithSeed()), Options{})

	w := serve(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())

	w = serve(t, r, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, float64(3), body["documents"])
}

func TestRouter_ReadyRequiresRedisWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Host = "localhost"
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 100, UseRedis: true, WindowSeconds: 1}

	// no client available
	r := NewRouter(cfg, service.NewMemoryService(), Options{})
	w := serve(t, r, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "not_ready")

	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	r = NewRouter(cfg, service.NewMemoryService(), Options{Redis: client})
	w = serve(t, r, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	deps := body["deps"].(map[string]interface{})
	assert.Equal(t, true, deps["redis"])
}

func TestRouter_RateLimitMemory(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.1, Burst: 2}
	r := NewRouter(cfg, service.NewMemoryService(), Options{})

	require.Equal(t, http.StatusOK, serve(t, r, http.MethodGet, "/api/documents", "").Code)
	require.Equal(t, http.StatusOK, serve(t, r, http.MethodGet, "/api/documents", "").Code)
	w := serve(t, r, http.MethodGet, "/api/documents", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"error":"Rate limit exceeded"}`, w.Body.String())
}

func TestRouter_RateLimitRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	cfg := testConfig()
	cfg.Redis.Host = "localhost"
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 0, UseRedis: true, WindowSeconds: 60}
	r := NewRouter(cfg, service.NewMemoryService(), Options{Redis: client})

	require.Equal(t, http.StatusOK, serve(t, r, http.MethodGet, "/api/documents", "").Code)
	// 60 requests fit in the window; a minute-aligned bucket boundary can
	// reset it at most once, so 130 requests must hit the limit
	limited := false
	for i := 0; i < 130 && !limited; i++ {
		limited = serve(t, r, http.MethodGet, "/api/documents", "").Code == http.StatusTooManyRequests
	}
	require.True(t, limited)
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	svc := service.NewMemoryService()
	r := NewRouter(testConfig(), svc, Options{Gatherer: reg})

	serve(t, r, http.MethodPost, "/api/documents", `{"content":"m"}`)

	w := serve(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "docsign_documents_created_total")
}

func TestRouter_Swagger(t *testing.T) {
	r := NewRouter(testConfig(), service.NewMemoryService(), Options{})
	w := serve(t, r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "/api/documents/{id}/sign")
}
