package main

import (
	"context"
	"flag"
	"time"

	"github.com/shenikar/blood_mobilization_system/internal/clock"
	"github.com/shenikar/blood_mobilization_system/internal/config"
	"github.com/shenikar/blood_mobilization_system/internal/repository"
	"github.com/shenikar/blood_mobilization_system/internal/seed"
	"github.com/shenikar/blood_mobilization_system/pkg/logger"
	redisclient "github.com/shenikar/blood_mobilization_system/pkg/redis"
	"github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "seed/emergencies.toml", "path to TOML file with emergency events")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fixture, err := seed.Load(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	events, err := fixture.Events(clock.RealClock{}.Now())
	if err != nil {
		log.Fatalf("Invalid seed file: %v", err)
	}

	store, err := repository.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	n, err := seed.Apply(ctx, store.Events, events, log)
	if err != nil {
		log.Errorf("Seeding stopped after %d events: %v", n, err)
		return
	}

	// Сервер кэширует активный каталог, поэтому сбрасываем его
	if cfg.RedisEnabled() {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to Redis, active catalog cache not invalidated")
		} else {
			defer redisClient.Close()
			cache := repository.NewRedisCatalogCache(redisClient, cfg.CatalogCacheTTL)
			if err := cache.InvalidateActiveEvents(ctx); err != nil {
				log.WithError(err).Warn("Failed to invalidate active catalog cache")
			}
		}
	}

	log.WithFields(logrus.Fields{"file": *file, "events": n}).Info("Seeding completed")
}
