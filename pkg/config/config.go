package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/simx-exchange/market-feed-service/pkg/questdb"
	"github.com/simx-exchange/market-feed-service/pkg/redis"
)

// Config represents the application configuration shared by all binaries.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Feed     FeedConfig     `envPrefix:"FEED_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	QuestDB  questdb.Config `envPrefix:"QUESTDB_"`
	Redis    redis.Config   `envPrefix:"REDIS_"`
	Gateway  GatewayConfig  `envPrefix:"GATEWAY_"`
	REST     RESTConfig     `envPrefix:"REST_"`
	Recorder RecorderConfig `envPrefix:"RECORDER_"`
}

// AppConfig represents the application identity configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"market-feed-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// FeedConfig controls the canonical feed produced by the feed binary:
// which symbols tick, how far in the past the stream starts, and how the
// price model is parameterized.
type FeedConfig struct {
	Symbols  []string      `env:"SYMBOLS" envSeparator:"," envDefault:"AAPL,MSFT,GOOG,AMZN"`
	Backfill time.Duration `env:"BACKFILL" envDefault:"0s"`
	Interval time.Duration `env:"INTERVAL" envDefault:"1s"`
	Buffer   int           `env:"BUFFER" envDefault:"64"`

	Seed            int64   `env:"SEED" envDefault:"42"`
	Volatility      float64 `env:"VOLATILITY" envDefault:"0.2"`
	InitialPriceMin float64 `env:"INITIAL_PRICE_MIN" envDefault:"10"`
	InitialPriceMax float64 `env:"INITIAL_PRICE_MAX" envDefault:"500"`
	VolumeMin       int64   `env:"VOLUME_MIN" envDefault:"1"`
	VolumeMax       int64   `env:"VOLUME_MAX" envDefault:"1000"`
}

// KafkaConfig represents the tick topic configuration.
type KafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"ticks"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"market-feed-recorder"`
}

// GatewayConfig represents the WebSocket gateway configuration.
type GatewayConfig struct {
	Port            int           `env:"PORT" envDefault:"8081"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	PongTimeout     time.Duration `env:"PONG_TIMEOUT" envDefault:"60s"`
	PingPeriod      time.Duration `env:"PING_PERIOD" envDefault:"54s"`
	MaxMessageSize  int64         `env:"MAX_MESSAGE_SIZE" envDefault:"1024"`
	StreamBuffer    int           `env:"STREAM_BUFFER" envDefault:"64"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// RESTConfig represents the query API configuration.
type RESTConfig struct {
	Port         int           `env:"PORT" envDefault:"8082"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

// RecorderConfig controls how the recorder batches ticks before flushing
// them to storage.
type RecorderConfig struct {
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"100"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"1s"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads the configuration and panics when parsing fails.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
