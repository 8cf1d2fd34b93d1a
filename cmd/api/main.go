package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/auth"
	"contactcenter_backend/internal/dashboard"
	apphttp "contactcenter_backend/internal/http"
	"contactcenter_backend/internal/http/router"
	"contactcenter_backend/internal/insights"
	insightsservice "contactcenter_backend/internal/insights/service"
	"contactcenter_backend/internal/leads"
	"contactcenter_backend/internal/scheduler"
	"contactcenter_backend/platform/ai/groq"
	"contactcenter_backend/platform/cache"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"
	"contactcenter_backend/platform/metrics"
	"contactcenter_backend/platform/validator"

	"google.golang.org/adk/model"
)

const (
	summaryCachePrefix = "dashboard:summary"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "dataSource", cfg.DataSource)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	source, err := leads.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open lead data source", "error", err)
		panic("failed to open lead data source: " + err.Error())
	}
	defer source.Close()

	appMetrics := metrics.New()
	val := validator.New()

	summaryCache, closeCache := initSummaryCache(ctx, cfg, log)
	if closeCache != nil {
		defer closeCache()
	}

	refreshClient, closeScheduler := initSummaryScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	store := source.Store()
	engine := analytics.New(store, store, store, analytics.Options{
		Timeout:        cfg.GetAnalyticsRequestTimeout(),
		Workers:        cfg.GetAnalyticsWorkers(),
		EnrollmentCode: cfg.GetEnrollmentCode(),
		Logger:         log,
		Metrics:        appMetrics,
	})

	summaries := insightsservice.NewSummaryStore(engine, summaryCache, log)
	insightsSvc := insightsservice.New(initModel(cfg, log), summaries, log, appMetrics)

	authModule := auth.NewModule(cfg, val, log)
	dashboardModule := dashboard.NewModule(engine, val)
	insightsModule := insights.NewModule(insightsSvc, val)

	if refreshClient != nil {
		if err := refreshClient.EnqueueSummaryRefresh(ctx, ""); err != nil {
			log.Warn("failed to enqueue summary warm-up", "error", err)
		}
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    source.Health(),
		Metrics:   appMetrics,
		Validator: val,
		Modules: []apphttp.Module{
			authModule,
			dashboardModule,
			insightsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initSummaryCache(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (insightsservice.SummaryCache, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; summary cache disabled")
		return nil, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect summary cache", "error", err)
		return nil, nil
	}

	return cache.NewJSONCache(client, summaryCachePrefix, cfg.GetSummaryCacheTTL()), func() {
		_ = client.Close()
	}
}

func initSummaryScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize summary scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initModel(cfg config.AIConfig, log *logger.Logger) model.LLM {
	if !cfg.IsAIEnabled() {
		log.Warn("GROQ_API_KEY not configured; insights will be degraded")
		return nil
	}
	return groq.NewModel(groq.Config{
		APIKey:  cfg.GetGroqAPIKey(),
		BaseURL: cfg.GetGroqBaseURL(),
		Model:   cfg.GetGroqModel(),
	})
}
