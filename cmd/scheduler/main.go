package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contactcenter_backend/internal/analytics"
	insightsservice "contactcenter_backend/internal/insights/service"
	"contactcenter_backend/internal/leads"
	"contactcenter_backend/internal/scheduler"
	"contactcenter_backend/platform/cache"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"
)

const summaryCachePrefix = "dashboard:summary"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "cron", cfg.GetSummaryRefreshCron())

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the scheduler")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := leads.Open(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open lead data source", "error", err)
		panic("failed to open lead data source: " + err.Error())
	}
	defer source.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		panic("failed to connect redis: " + err.Error())
	}
	defer func() { _ = redisClient.Close() }()

	store := source.Store()
	engine := analytics.New(store, store, store, analytics.Options{
		Timeout:        cfg.GetAnalyticsRequestTimeout(),
		Workers:        cfg.GetAnalyticsWorkers(),
		EnrollmentCode: cfg.GetEnrollmentCode(),
		Logger:         log,
	})
	summaries := insightsservice.NewSummaryStore(
		engine,
		cache.NewJSONCache(redisClient, summaryCachePrefix, cfg.GetSummaryCacheTTL()),
		log,
	)

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	periodic, err := scheduler.NewPeriodic(cfg, log)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}
	go periodic.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, summaries, engine, client, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
