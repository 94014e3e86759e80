package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/config"
	"github.com/northgate-partners/webcore/internal/db"
	"github.com/northgate-partners/webcore/internal/domain"
	logpkg "github.com/northgate-partners/webcore/internal/logger"
	contactrepo "github.com/northgate-partners/webcore/internal/repository/contact"
	credentialrepo "github.com/northgate-partners/webcore/internal/repository/credential"
	eventsrepo "github.com/northgate-partners/webcore/internal/repository/events"
	insightrepo "github.com/northgate-partners/webcore/internal/repository/insight"
	"github.com/northgate-partners/webcore/internal/repository/sitecache"
	chiTransport "github.com/northgate-partners/webcore/internal/transport/chi"
	analyticsuc "github.com/northgate-partners/webcore/internal/usecase/analytics"
	contactuc "github.com/northgate-partners/webcore/internal/usecase/contact"
	healthuc "github.com/northgate-partners/webcore/internal/usecase/health"
	searchuc "github.com/northgate-partners/webcore/internal/usecase/search"
	sitemapuc "github.com/northgate-partners/webcore/internal/usecase/sitemap"
	"github.com/northgate-partners/webcore/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting webcore API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("base_url", cfg.Site.BaseURL),
	)

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres.URL)
	if err != nil {
		logger.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("Connected to postgres")

	// Redis is optional: without it the sitemap renders every request and
	// analytics/notification streams are dropped.
	var redisStore *db.RedisStore
	if len(cfg.Redis.Addrs) > 0 {
		redisStore, err = db.NewRedisStore(db.RedisConfig{
			Addrs:    cfg.Redis.Addrs,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer redisStore.Close()

		readiness := time.Duration(cfg.Redis.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
	}

	// Repositories
	insightRepo := insightrepo.New(pool)
	credentialRepo := credentialrepo.New(pool)
	contactRepo := contactrepo.New(pool)

	var cache sitemapuc.Cache
	var recorder analyticsuc.Recorder
	var notifier contactuc.Notifier
	if redisStore != nil {
		ttl := time.Duration(cfg.Site.SitemapTTLSec) * time.Second
		cache = sitecache.New(redisStore, ttl)
		events := eventsrepo.New(redisStore)
		recorder = events
		notifier = events
	}

	// Use case services
	searchSvc := searchuc.New(insightRepo, credentialRepo, scoreWeights(cfg.Search.Weights))
	sitemapSvc := sitemapuc.New(cfg.Site.BaseURL, insightRepo, credentialRepo, cache).
		WithExclusions(cfg.Site.Exclusions)
	analyticsSvc := analyticsuc.New(recorder)
	contactSvc := contactuc.New(contactRepo, notifier, cfg.Contact.DefaultRegion)

	// Pass nil interface (not typed nil pointer!) when Redis is absent.
	var redisPinger healthuc.Pinger
	if redisStore != nil {
		redisPinger = redisStore
	}
	healthSvc := healthuc.New(pool, redisPinger)

	server := chiTransport.NewServer(searchSvc, sitemapSvc, analyticsSvc, contactSvc, healthSvc, logger)

	// Outer middleware wraps the whole route tree, outermost first.
	var handler http.Handler = server.Router(cfg.Auth.AdminKeys)
	handler = wideEventMiddleware(logger)(handler)
	handler = chiMiddleware.RequestID(handler)
	handler = jsonRecoverer(logger)(handler)

	// Background sitemap refresh keeps the cache warm between busts.
	scheduler := cron.New()
	if cache != nil {
		_, err := scheduler.AddFunc(cfg.Site.RefreshSchedule, func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := sitemapSvc.Refresh(logpkg.ContextWithLogger(refreshCtx, logger)); err != nil {
				logger.Warn("Scheduled sitemap refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("Invalid sitemap refresh schedule",
				zap.String("schedule", cfg.Site.RefreshSchedule), zap.Error(err))
		}
		scheduler.Start()
		logger.Info("Sitemap refresh scheduled", zap.String("schedule", cfg.Site.RefreshSchedule))
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// scoreWeights merges config overrides over the default relevance weights.
func scoreWeights(w config.WeightsConfig) domain.ScoreWeights {
	weights := domain.DefaultScoreWeights()
	if w.TitleExact > 0 {
		weights.TitleExact = w.TitleExact
	}
	if w.TitleMatch > 0 {
		weights.TitleMatch = w.TitleMatch
	}
	if w.ExcerptMatch > 0 {
		weights.ExcerptMatch = w.ExcerptMatch
	}
	if w.ContentMatch > 0 {
		weights.ContentMatch = w.ContentMatch
	}
	if w.AuthorMatch > 0 {
		weights.AuthorMatch = w.AuthorMatch
	}
	if w.CategoryMatch > 0 {
		weights.CategoryMatch = w.CategoryMatch
	}
	return weights
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
