package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"hookdash/internal/api"
	"hookdash/internal/api/handlers"
	"hookdash/internal/api/middleware"
	"hookdash/internal/engine/ingest"
	"hookdash/internal/engine/stream"
	"hookdash/internal/pkg/logger"
	"hookdash/internal/platform/auth"
	"hookdash/internal/platform/config"
	"hookdash/internal/platform/database"
	"hookdash/internal/platform/repositories"
	"hookdash/internal/workers"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Repositories
	eventRepo := repositories.NewEventRepository(db)
	snapshotRepo := repositories.NewSnapshotRepository(db)

	// Live stream: subscribe-then-fetch so the watcher misses nothing.
	hub := stream.NewHub(cfg.Dashboard.StreamBuffer)
	watcher := stream.NewWatcher(hub, eventRepo)
	defer watcher.Close()

	// Ingestion pipeline
	ingestSvc := ingest.NewService(eventRepo, hub)

	// Background stats snapshots
	statsWorker := workers.NewStatsWorker(eventRepo, snapshotRepo, cfg.Dashboard.RecentWindow, nil)
	stop := make(chan struct{})
	defer close(stop)
	go statsWorker.Run(cfg.Dashboard.SnapshotInterval, stop)

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(ingestSvc, cfg.Webhooks.SigningSecret, cfg.Webhooks.MaxBodyBytes)
	eventHandler := handlers.NewEventHandler(eventRepo)
	statsHandler := handlers.NewStatsHandler(watcher, snapshotRepo, cfg.Dashboard.RecentWindow, nil)
	streamHandler := handlers.NewStreamHandler(hub)
	healthHandler := handlers.NewHealthHandler(db)
	metricsHandler := handlers.NewMetricsHandler(eventRepo, hub)

	// Middleware
	var authMiddleware *middleware.AuthMiddleware
	if cfg.Auth.Enabled {
		authMiddleware = middleware.NewAuthMiddleware(auth.NewTokenService(cfg.Auth))
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	// Router
	deps := &api.Dependencies{
		WebhookHandler: webhookHandler,
		EventHandler:   eventHandler,
		StatsHandler:   statsHandler,
		StreamHandler:  streamHandler,
		HealthHandler:  healthHandler,
		MetricsHandler: metricsHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
