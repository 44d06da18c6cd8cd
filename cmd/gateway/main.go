package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/internal/gateway"
	"github.com/simx-exchange/market-feed-service/internal/infrastructure/redis/snapshot"
	marketUc "github.com/simx-exchange/market-feed-service/internal/usecase/market"
	"github.com/simx-exchange/market-feed-service/internal/usecase/pricing"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/httplib/healthcheck"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/redis"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		os.Exit(1)
	}
	defer log.Sync()

	redisClient := redis.NewClient(log, &cfg.Redis)
	if err := redisClient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "init_redis"})
		os.Exit(1)
	}
	defer redisClient.Disconnect(context.Background())

	snapshots := snapshot.NewRepository(redisClient, log)

	pricingFactory := pricing.NewFactory(pricing.Config{
		Volatility:      cfg.Feed.Volatility,
		InitialPriceMin: cfg.Feed.InitialPriceMin,
		InitialPriceMax: cfg.Feed.InitialPriceMax,
		VolumeMin:       cfg.Feed.VolumeMin,
		VolumeMax:       cfg.Feed.VolumeMax,
	}, cfg.Feed.Seed)

	// Every subscription gets its own market over its own stream buffer.
	marketFactory := func(symbols []string, start time.Time) marketv1.Producer {
		return marketUc.NewMarketWithOptions(
			symbols,
			start,
			pricingFactory,
			log,
			marketv1.NewRealClock(),
			marketUc.Options{Interval: cfg.Feed.Interval, Buffer: cfg.Gateway.StreamBuffer},
		)
	}

	checks := map[string]healthcheck.Pinger{
		"redis": healthcheck.PingFunc(redisClient.Ping),
	}

	server := gateway.NewServer(cfg.Gateway, marketFactory, snapshots, checks, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "gateway_serve"})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "gateway_stop"})
	}

	log.Info("gateway stopped")
}
