package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/simx-exchange/market-feed-service/internal/bootstrap"
	"github.com/simx-exchange/market-feed-service/internal/consumer"
	"github.com/simx-exchange/market-feed-service/internal/rest"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/questdb"
	"github.com/simx-exchange/market-feed-service/pkg/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	questdbClient, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "init_questdb"})
		os.Exit(1)
	}
	defer questdbClient.Close()

	redisClient := redis.NewClient(log, &cfg.Redis)
	if err := redisClient.Connect(ctx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "init_redis"})
		os.Exit(1)
	}
	defer redisClient.Disconnect(context.Background())

	app := bootstrap.Bootstrap{}
	app.Init(bootstrap.Config{
		QuestDB: questdbClient,
		Redis:   redisClient,
		Logger:  log,
	})

	tickConsumer := consumer.NewTickConsumer(
		cfg.Kafka,
		cfg.Recorder,
		log,
		app.Usecase.TickUsecase,
		app.Repository.SnapshotRepository,
	)

	queryAPI := rest.NewServer(cfg.REST, app.Usecase.TickUsecase, app.Repository.SnapshotRepository, log)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tickConsumer.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		tickConsumer.Subscribe(ctx)
	}()

	go func() {
		if err := queryAPI.Start(); err != nil {
			log.Error(err, logger.Field{Key: "action", Value: "query_api"})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down recorder")

	cancel()
	wg.Wait()

	if err := tickConsumer.Stop(); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "consumer_stop"})
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := queryAPI.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "query_api_stop"})
	}

	log.Info("recorder stopped")
}
