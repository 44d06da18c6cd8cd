package consumer

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	feedv1 "github.com/simx-exchange/market-feed-service/internal/domain/feed/v1"
	tickDomain "github.com/simx-exchange/market-feed-service/internal/domain/tick"
	tickInfra "github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
	"github.com/simx-exchange/market-feed-service/internal/infrastructure/redis/snapshot"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// TickConsumer reads the feed topic and records ticks: batches go to the
// tick store, the latest tick per symbol goes to the snapshot hash. Offsets
// are committed only after a batch is flushed, so a crash replays at most one
// batch.
type TickConsumer struct {
	kafkaReader feedv1.Reader
	logger      logger.Interface

	tickUsecase tickDomain.Usecase
	snapshots   snapshot.SnapshotRepository

	batchSize     int
	flushInterval time.Duration
	msgChan       chan kafka.Message
}

// NewTickConsumer creates a TickConsumer over a consumer-group reader built
// from config.
func NewTickConsumer(
	kafkaConfig config.KafkaConfig,
	recorderConfig config.RecorderConfig,
	logger logger.Interface,
	tickUsecase tickDomain.Usecase,
	snapshots snapshot.SnapshotRepository,
) *TickConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkaConfig.Brokers,
		Topic:       kafkaConfig.Topic,
		GroupID:     kafkaConfig.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return NewTickConsumerWithReader(kafkaReader, recorderConfig, logger, tickUsecase, snapshots)
}

// NewTickConsumerWithReader injects the kafka surface directly, for tests.
func NewTickConsumerWithReader(
	kafkaReader feedv1.Reader,
	recorderConfig config.RecorderConfig,
	logger logger.Interface,
	tickUsecase tickDomain.Usecase,
	snapshots snapshot.SnapshotRepository,
) *TickConsumer {
	batchSize := recorderConfig.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	flushInterval := recorderConfig.FlushInterval
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	return &TickConsumer{
		kafkaReader:   kafkaReader,
		logger:        logger,
		tickUsecase:   tickUsecase,
		snapshots:     snapshots,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		msgChan:       make(chan kafka.Message),
	}
}

// Start reads messages from the topic into the internal channel until ctx
// ends. Run Subscribe concurrently to drain it.
func (c *TickConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting tick consumer", logger.Field{
		Key:   "action",
		Value: "tick_consumer_start",
	})

	defer close(c.msgChan)

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "tick_consumer_stop",
			})
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			select {
			case c.msgChan <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Stop closes the underlying reader.
func (c *TickConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping tick consumer", logger.Field{
		Key:   "action",
		Value: "tick_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe drains the internal channel, batching ticks and flushing when the
// batch fills or the flush interval elapses. It returns when Start has
// stopped feeding the channel, after a final flush.
func (c *TickConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to tick consumer", logger.Field{
		Key:   "action",
		Value: "tick_consumer_subscribe",
	})

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	batch := make([]kafka.Message, 0, c.batchSize)

	for {
		select {
		case msg, ok := <-c.msgChan:
			if !ok {
				c.flush(ctx, batch)
				return
			}

			batch = append(batch, msg)
			if len(batch) >= c.batchSize {
				c.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			c.flush(ctx, batch)
			batch = batch[:0]
		}
	}
}

// flush decodes and stores one batch, updates per-symbol snapshots, then
// commits the batch's offsets. Undecodable messages are logged and skipped;
// a storage error leaves the batch uncommitted so it is redelivered.
func (c *TickConsumer) flush(ctx context.Context, batch []kafka.Message) {
	if len(batch) == 0 {
		return
	}

	ticks := make([]*tickInfra.Tick, 0, len(batch))
	latest := make(map[string]feedv1.TickEnvelope, len(batch))
	for _, msg := range batch {
		envelope, err := feedv1.FromBytes(msg.Value)
		if err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "unmarshal_tick",
			})
			continue
		}

		row := &tickInfra.Tick{}
		row.FromMarketTick(envelope.Tick())
		ticks = append(ticks, row)
		latest[envelope.Symbol] = envelope
	}

	if len(ticks) > 0 {
		if err := c.tickUsecase.StoreTicks(ctx, ticks); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "store_ticks",
			})
			return
		}
	}

	for _, envelope := range latest {
		if err := c.snapshots.StoreLatest(ctx, envelope.Tick()); err != nil {
			c.logger.ErrorContext(ctx, err,
				logger.Field{Key: "action", Value: "store_snapshot"},
				logger.Field{Key: "symbol", Value: envelope.Symbol},
			)
		}
	}

	if err := c.kafkaReader.CommitMessages(ctx, batch...); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "commit_messages",
		})
	}
}
