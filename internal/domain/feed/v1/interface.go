package feedv1

import (
	"context"

	"github.com/segmentio/kafka-go"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
)

// Writer is the kafka surface the publisher writes through.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reader is the kafka surface the consumer reads through.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher pushes ticks onto the feed topic.
type Publisher interface {
	PublishTick(ctx context.Context, tick marketv1.Tick) error
	Close() error
}
