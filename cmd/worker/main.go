// Command worker runs the stats snapshot job standalone, for
// deployments that keep background aggregation off the API process.
package main

import (
	"flag"
	"log"

	"hookdash/internal/pkg/logger"
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

	eventRepo := repositories.NewEventRepository(db)
	snapshotRepo := repositories.NewSnapshotRepository(db)

	worker := workers.NewStatsWorker(eventRepo, snapshotRepo, cfg.Dashboard.RecentWindow, nil)

	log.Printf("Stats worker running every %v", cfg.Dashboard.SnapshotInterval)
	worker.Run(cfg.Dashboard.SnapshotInterval, make(chan struct{}))
}
