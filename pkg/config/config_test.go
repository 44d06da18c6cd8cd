package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "market-feed-service", cfg.App.Name)
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOG", "AMZN"}, cfg.Feed.Symbols)
	assert.Equal(t, time.Duration(0), cfg.Feed.Backfill)
	assert.Equal(t, time.Second, cfg.Feed.Interval)
	assert.Equal(t, int64(42), cfg.Feed.Seed)
	assert.Equal(t, "ticks", cfg.Kafka.Topic)
	assert.Equal(t, 8812, cfg.QuestDB.Port)
	assert.Equal(t, 100, cfg.Recorder.BatchSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FEED_SYMBOLS", "AAPL,MSFT")
	t.Setenv("FEED_BACKFILL", "3s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("GATEWAY_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Feed.Symbols)
	assert.Equal(t, 3*time.Second, cfg.Feed.Backfill)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 9000, cfg.Gateway.Port)
}
