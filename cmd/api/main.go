package main

import (
	"context"
	"log"

	"github.com/clusterkv/go-cache-gateway/config"
	"github.com/clusterkv/go-cache-gateway/internal/bootstrap"
	"github.com/clusterkv/go-cache-gateway/internal/maintenance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Printf("operation timeouts: %s", cfg.Timeouts)

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis, cfg.Timeouts)
	if err != nil {
		log.Fatalf("failed to connect to cluster: %v", err)
	}
	defer rdb.Close()

	db, err := bootstrap.OpenDB(cfg)
	if err != nil {
		log.Fatalf("failed to open audit store: %v", err)
	}
	if db == nil {
		log.Println("audit store not configured, operation auditing disabled")
	} else {
		defer db.Close()
	}

	router, cacheService := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: cfg,
		Redis:  rdb,
		DB:     db,
	})

	scheduler := maintenance.NewScheduler(cacheService)
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
