package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	feedApp "github.com/simx-exchange/market-feed-service/internal/app/feed"
	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	feedUc "github.com/simx-exchange/market-feed-service/internal/usecase/feed"
	marketUc "github.com/simx-exchange/market-feed-service/internal/usecase/market"
	"github.com/simx-exchange/market-feed-service/internal/usecase/pricing"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
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

	factory := pricing.NewFactory(pricing.Config{
		Volatility:      cfg.Feed.Volatility,
		InitialPriceMin: cfg.Feed.InitialPriceMin,
		InitialPriceMax: cfg.Feed.InitialPriceMax,
		VolumeMin:       cfg.Feed.VolumeMin,
		VolumeMax:       cfg.Feed.VolumeMax,
	}, cfg.Feed.Seed)

	start := time.Now().Add(-cfg.Feed.Backfill)
	market := marketUc.NewMarketWithOptions(
		cfg.Feed.Symbols,
		start,
		factory,
		log,
		marketv1.NewRealClock(),
		marketUc.Options{Interval: cfg.Feed.Interval, Buffer: cfg.Feed.Buffer},
	)

	publisher := feedUc.NewPublisher(cfg.Kafka, log)
	engine := feedApp.NewEngine(market, publisher, log)

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "feed_start"})
		os.Exit(1)
	}

	log.Info("feed running",
		logger.Field{Key: "symbols", Value: cfg.Feed.Symbols},
		logger.Field{Key: "backfill", Value: cfg.Feed.Backfill.String()},
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down feed")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := engine.Stop(stopCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "feed_stop"})
	}

	log.Info("feed stopped")
}
