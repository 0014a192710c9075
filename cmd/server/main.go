package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/blood_mobilization_system/internal/clock"
	"github.com/shenikar/blood_mobilization_system/internal/config"
	v1 "github.com/shenikar/blood_mobilization_system/internal/handler/http/v1"
	"github.com/shenikar/blood_mobilization_system/internal/repository"
	"github.com/shenikar/blood_mobilization_system/internal/service"
	"github.com/shenikar/blood_mobilization_system/internal/webhook"
	"github.com/shenikar/blood_mobilization_system/pkg/logger"
	redisclient "github.com/shenikar/blood_mobilization_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/blood_mobilization_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Emergency Blood Mobilization API
// @version 1.0
// @description Matches blood donors with active hospital emergencies.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище и миграции
	store, err := repository.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	// Redis нужен для кэша каталога и очереди вебхуков
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	var catalogCache service.CatalogCache = repository.NopCatalogCache{}
	if redisClient != nil {
		catalogCache = repository.NewRedisCatalogCache(redisClient, cfg.CatalogCacheTTL)
	}

	// Издатель и воркер вебхуков
	publisher, closeNotifier, err := startNotifier(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to start %s notifier: %v", cfg.NotifyTransport, err)
	}
	defer closeNotifier()

	// Инициализация сервисов
	emergencyService := service.NewEmergencyService(
		store.Events,
		store.Responses,
		catalogCache,
		publisher,
		clock.RealClock{},
		log,
	)

	// Инициализация хэндлеров
	handler := v1.NewHandler(emergencyService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()

	log.Info("Server gracefully stopped")
}

// startNotifier выбирает транспорт уведомлений и запускает воркер доставки вебхуков
func startNotifier(ctx context.Context, cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) (webhook.WebhookPublisher, func(), error) {
	worker := webhook.NewWebhookWorker(log, cfg)

	switch cfg.NotifyTransport {
	case config.NotifyTransportRedis:
		worker.StartRedis(ctx, redisClient)
		return webhook.NewRedisWebhookPublisher(redisClient), func() {}, nil

	case config.NotifyTransportNATS:
		nc, err := webhook.NewNATSConn(cfg.NATSURL)
		if err != nil {
			return nil, nil, err
		}
		if err := worker.StartNATS(ctx, nc, cfg.NATSSubject); err != nil {
			nc.Close()
			return nil, nil, err
		}
		log.WithField("subject", cfg.NATSSubject).Info("Successfully connected to NATS")
		return webhook.NewNATSWebhookPublisher(nc, cfg.NATSSubject), func() { drainNATS(nc, log) }, nil
	}

	log.Info("Donor notifications are disabled")
	return webhook.NopWebhookPublisher{}, func() {}, nil
}

func drainNATS(nc *nats.Conn, log *logrus.Logger) {
	if err := nc.Drain(); err != nil {
		log.WithError(err).Warn("Failed to drain NATS connection")
	}
}
