package feed

import (
	"context"
	"sync"

	feedv1 "github.com/simx-exchange/market-feed-service/internal/domain/feed/v1"
	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// Engine pumps a market's tick stream onto the feed topic. It owns one
// producer and one publisher; starting it drains the market until the run
// context ends or the market stream closes.
type Engine struct {
	producer  marketv1.Producer
	publisher feedv1.Publisher
	logger    logger.Interface

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates a feed engine over a market producer and a publisher.
func NewEngine(producer marketv1.Producer, publisher feedv1.Publisher, logger logger.Interface) *Engine {
	return &Engine{
		producer:  producer,
		publisher: publisher,
		logger:    logger,
	}
}

// Start begins producing and publishing ticks. It returns immediately; the
// pump runs until Stop is called or ctx is cancelled.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	ticks, err := e.producer.Produce(e.ctx)
	if err != nil {
		return err
	}

	e.wg.Add(1)
	go e.pump(ticks)

	e.logger.InfoContext(ctx, "feed engine started", logger.Field{
		Key:   "action",
		Value: "feed_engine_start",
	})

	return nil
}

// Stop cancels the pump and waits for it to drain, bounded by ctx.
func (e *Engine) Stop(ctx context.Context) error {
	e.cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	e.logger.InfoContext(ctx, "feed engine stopped", logger.Field{
		Key:   "action",
		Value: "feed_engine_stop",
	})

	return e.publisher.Close()
}

func (e *Engine) pump(ticks <-chan marketv1.Tick) {
	defer e.wg.Done()

	for tick := range ticks {
		if err := e.publisher.PublishTick(e.ctx, tick); err != nil {
			e.logger.ErrorContext(e.ctx, err,
				logger.Field{Key: "action", Value: "publish_tick"},
				logger.Field{Key: "symbol", Value: tick.Symbol},
			)
		}
	}

	if err := e.producer.Err(); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.Field{
			Key:   "action",
			Value: "market_stream_fault",
		})
	}
}
