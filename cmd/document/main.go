package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docsign/internal/config"
	"github.com/gogotex/docsign/internal/document/repository"
	"github.com/gogotex/docsign/internal/document/service"
	"github.com/gogotex/docsign/internal/server"
	"github.com/gogotex/docsign/pkg/logger"
	"github.com/gogotex/docsign/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "env-file",
		Value:   ".env",
		Usage:   "optional dotenv file loaded before reading the environment",
		EnvVars: []string{"ENV_FILE"},
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "override LOG_LEVEL (debug|info|warn|error|fatal)",
	},
	&cli.BoolFlag{
		Name:  "no-seed",
		Usage: "start with an empty registry",
	},
}

func main() {
	app := &cli.App{
		Name:   "docsign",
		Usage:  "serve the document signing API",
		Flags:  flags,
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatalf("docsign: %v", err)
	}
}

func run(cCtx *cli.Context) error {
	cfg, err := config.LoadConfig(cCtx.String("env-file"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cCtx.IsSet("log-level") {
		cfg.Log.Level = cCtx.String("log-level")
	}
	if cCtx.Bool("no-seed") {
		cfg.Documents.Seed = false
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := connectRedis(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var opts []repository.Option
	if cfg.Documents.Seed {
		opts = append(opts, repository.WithSeed())
	}
	svc := service.NewMemoryService(opts...)
	logger.Infof("registry ready: %d documents", svc.Count())

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(cfg, svc, server.Options{Redis: rdb})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("document service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("shutting down (timeout %s)", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// connectRedis returns a client only when Redis is configured and answers a ping.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	addr := cfg.Redis.Addr()
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("redis %s unavailable, rate limiter falls back to memory: %v", addr, err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to redis %s", addr)
	return client
}
