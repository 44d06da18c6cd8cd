package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/migration"
	"github.com/simx-exchange/market-feed-service/pkg/questdb"
)

func main() {
	var (
		dir   = flag.String("dir", "internal/infrastructure/questdb/migrations", "migration directory")
		down  = flag.Bool("down", false, "revert instead of apply")
		steps = flag.Int("steps", 0, "number of migrations (0 = all up, required for down)")
	)
	flag.Parse()

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

	client, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "init_questdb"})
		os.Exit(1)
	}
	defer client.Close()

	runner := migration.NewRunner(client, log, *dir)

	if *down {
		err = runner.MigrateDown(ctx, *steps)
	} else {
		err = runner.MigrateUp(ctx, *steps)
	}
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "migrate"})
		os.Exit(1)
	}

	log.Info("migrations completed")
}
