package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/config"
	_ "storefront-api/docs"
	"storefront-api/internal/cache"
	"storefront-api/internal/cleanup"
	"storefront-api/internal/hashing"
	"storefront-api/internal/producer"
	"storefront-api/internal/repository"
	"storefront-api/internal/router"
	"storefront-api/internal/service"
	"storefront-api/internal/token"
	"storefront-api/pkg/database"
	"storefront-api/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title Storefront API
// @version 0.1.0
// @description REST API витрины: каталог, корзина и транзакционное оформление заказов
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	store := repository.New(db)

	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		var err error
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Redis rate limiting enabled")
	} else {
		log.Info("Redis rate limiting disabled")
	}

	var emailProducer service.EmailProducer
	if cfg.Kafka.Enabled {
		p := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.EmailTopic)
		defer p.Close()
		emailProducer = p
		log.Info("Kafka email producer enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		log.Info("Kafka email producer disabled")
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	authSvc := service.NewAuthService(store, hasher, tokens, emailProducer, log, cfg.JWT.AccessExp, cfg.JWT.RefreshExp)
	catalogSvc := service.NewCatalogService(store, log)
	cartSvc := service.NewCartService(store, log)
	orderSvc := service.NewOrderService(store, emailProducer, log)

	cleanupSvc := cleanup.NewCleanupService(db, log)
	scheduler := cleanup.NewScheduler(cleanupSvc, log)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	scheduler.Start(cleanupCtx)

	engine := router.Router(router.Deps{
		Auth:           authSvc,
		Catalog:        catalogSvc,
		Cart:           cartSvc,
		Orders:         orderSvc,
		Tokens:         tokens,
		Redis:          redisClient,
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	scheduler.Stop()
	cleanupCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
