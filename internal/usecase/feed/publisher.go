package feed

import (
	"context"

	"github.com/segmentio/kafka-go"

	feedv1 "github.com/simx-exchange/market-feed-service/internal/domain/feed/v1"
	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// Publisher writes ticks to the feed topic, keyed by symbol so each symbol's
// sequence lands on one partition in order.
type Publisher struct {
	writer feedv1.Writer
	logger logger.Interface
}

var _ feedv1.Publisher = (*Publisher)(nil)

// NewPublisher creates a publisher over a kafka writer built from config.
func NewPublisher(config config.KafkaConfig, logger logger.Interface) *Publisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
	})

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// NewPublisherWithWriter injects the kafka surface directly, for tests.
func NewPublisherWithWriter(writer feedv1.Writer, logger logger.Interface) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishTick publishes a single tick to the feed topic.
func (p *Publisher) PublishTick(ctx context.Context, tick marketv1.Tick) error {
	payload, err := feedv1.ToBytes(tick)
	if err != nil {
		return errors.TracerFromError(err)
	}

	msg := kafka.Message{
		Key:   []byte(tick.Symbol),
		Value: payload,
		Time:  tick.Timestamp,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "symbol", Value: tick.Symbol},
			logger.Field{Key: "timestamp", Value: tick.Timestamp},
		)
		return errors.NewTracer("failed to publish tick")
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
