package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docsign/internal/config"
	"github.com/gogotex/docsign/internal/document/handler"
	"github.com/gogotex/docsign/internal/document/service"
	"github.com/gogotex/docsign/pkg/logger"
	"github.com/gogotex/docsign/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Options carries the optional runtime dependencies of the router.
type Options struct {
	// Redis backs the rate limiter when RateLimit.UseRedis is set.
	Redis *redis.Client
	// Gatherer serves /metrics; defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Started is reported as uptime on /ready; defaults to now.
	Started time.Time
}

// NewRouter assembles the gin engine: middleware, probes, metrics, API docs
// and the document routes.
func NewRouter(cfg *config.Config, svc service.Service, opts Options) *gin.Engine {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}

	r := gin.New()
	// CORS runs first so preflight requests never hit the limiter
	r.Use(middleware.CORS(), middleware.RequestID(), middleware.AccessLog(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && opts.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(opts.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis (rps=%v burst=%d window=%s)", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter: memory (rps=%v burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(cfg, svc, opts))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	handler.RegisterSwagger(r)
	handler.RegisterDocumentRoutes(r, svc)
	return r
}

// readyHandler returns 200 only when the dependencies the config asks for are reachable.
func readyHandler(cfg *config.Config, svc service.Service, opts Options) gin.HandlerFunc {
	needRedis := cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != ""
	return func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"registry": true}

		if needRedis {
			ok := opts.Redis != nil && opts.Redis.Ping(c.Request.Context()).Err() == nil
			deps["redis"] = ok
			ready = ready && ok
		}

		body := gin.H{
			"deps":      deps,
			"documents": svc.Count(),
			"uptime":    time.Since(opts.Started).String(),
		}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	}
}
