package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/gateway"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/notify"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/payment"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := buildLogger(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting storefront API",
		zap.String("address", cfg.Server.Addr()),
		zap.String("database", cfg.MongoDB.Database))

	// Mongo
	mongo, err := repository.NewMongo(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := mongo.Ping(ctx); err != nil {
		cancel()
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	cancel()
	logger.Info("MongoDB connected")

	// Redis
	rdb := repository.NewRedis(&cfg.Redis)
	if err := rdb.Ping(context.Background()); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	} else {
		logger.Info("Redis connected")
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	// Stores
	users := repository.NewUserStore(mongo)
	products := repository.NewProductStore(mongo)
	categories := repository.NewCategoryStore(mongo)
	carts := repository.NewCartStore(mongo)
	orders := repository.NewOrderStore(mongo)
	reviews := repository.NewReviewStore(mongo)

	// External collaborators
	gatewayClient := payment.NewClient(&cfg.Payment)
	mailer := notify.NewMailer(&cfg.SMTP)

	// Services
	authSvc := service.NewAuthService(users, rdb, mailer, cfg.JWT, logger)
	catalogSvc := service.NewCatalogService(products, categories, logger)
	cartSvc := service.NewCartService(carts, products, logger)
	checkoutSvc := service.NewCheckoutService(carts, products, orders, users,
		gatewayClient, mailer, mongo, cfg.Shipping, logger)
	reviewSvc := service.NewReviewService(reviews, products, logger)
	adminSvc := service.NewAdminService(users, orders, products, rdb, logger)

	gw := gateway.NewGateway(cfg, logger, authSvc, catalogSvc, cartSvc, checkoutSvc, reviewSvc, adminSvc)
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	logger.Info("Gateway started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Fatal("Gateway error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close MongoDB connection", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("Failed to close Redis connection", zap.Error(err))
	}

	logger.Info("Service stopped")
}

func buildLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}
