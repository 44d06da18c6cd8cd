package market

import (
	"context"
	"sync"
	"time"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	pricingv1 "github.com/simx-exchange/market-feed-service/internal/domain/pricing/v1"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// Market drives a fixed set of symbols through backfill and live generation
// and produces one continuous, time-ordered tick stream. A single goroutine
// owns all symbol state, so symbols need no locking of their own.
//
// Per step every symbol advances to the same market time, in the order the
// symbols were given at construction. While backfilling, steps run as fast as
// the consumer drains them; once caught up, steps pace at Options.Interval.
type Market struct {
	symbols []*marketv1.Symbol
	clock   *marketv1.MarketClock
	wall    marketv1.Clock
	logger  logger.Interface
	options Options

	out chan marketv1.Tick

	mu      sync.Mutex
	started bool
	err     error
}

var _ marketv1.Producer = (*Market)(nil)

// NewMarket creates a Market over the system clock with default options. The
// start instant selects how much history to backfill; a start that is not in
// the past means none.
func NewMarket(symbolIDs []string, start time.Time, factory pricingv1.Factory, log logger.Interface) *Market {
	return NewMarketWithOptions(symbolIDs, start, factory, log, marketv1.NewRealClock(), DefaultOptions())
}

// NewMarketWithOptions creates a Market with an explicit wall clock and
// options. The catch-up target is sampled from wall exactly once, here.
func NewMarketWithOptions(
	symbolIDs []string,
	start time.Time,
	factory pricingv1.Factory,
	log logger.Interface,
	wall marketv1.Clock,
	options Options,
) *Market {
	if options.Interval <= 0 {
		options.Interval = defaultInterval
	}
	if options.Buffer <= 0 {
		options.Buffer = defaultBuffer
	}

	clock := marketv1.NewMarketClock(start, wall.Now())

	seed := clock.SeedInstant()
	symbols := make([]*marketv1.Symbol, 0, len(symbolIDs))
	for _, id := range symbolIDs {
		symbols = append(symbols, marketv1.NewSymbol(id, seed, factory(id)))
	}

	return &Market{
		symbols: symbols,
		clock:   clock,
		wall:    wall,
		logger:  log,
		options: options,
		out:     make(chan marketv1.Tick, options.Buffer),
	}
}

// Produce starts the producer goroutine and returns the tick stream. It may
// be called once per Market; further calls fail with a market_already_started
// error. The stream closes when ctx is cancelled or the market faults; after
// close, Err distinguishes the two.
func (m *Market) Produce(ctx context.Context) (<-chan marketv1.Tick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil, errors.NewErrorDetails(
			"market is already producing",
			string(errors.MarketAlreadyStarted),
			"",
		)
	}
	m.started = true

	go m.run(ctx)

	return m.out, nil
}

// Err reports the fault that terminated the stream. It is meaningful once
// the channel returned by Produce is closed; nil means the stream ended by
// cancellation.
func (m *Market) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.err
}

func (m *Market) run(ctx context.Context) {
	defer close(m.out)

	for m.clock.Backfilling() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !m.emitStep(ctx, m.clock.BackfillStep()) {
			return
		}
	}

	for {
		if !m.emitStep(ctx, m.clock.LiveStep(m.wall.Now())) {
			return
		}

		if err := m.wall.Sleep(ctx, m.options.Interval); err != nil {
			return
		}
	}
}

// emitStep advances every symbol to ts, in construction order, and sends the
// resulting ticks. Each tick leaves the channel as a value copy; later steps
// never mutate what a consumer already received. It reports false when the
// stream must stop, either because ctx ended mid-send or because a symbol
// rejected the timestamp, which is a fault in the stepping logic and is
// surfaced through Err rather than retried.
func (m *Market) emitStep(ctx context.Context, ts time.Time) bool {
	for _, symbol := range m.symbols {
		tick, err := symbol.Advance(ts)
		if err != nil {
			m.fail(err)
			return false
		}

		select {
		case m.out <- tick:
		case <-ctx.Done():
			return false
		}
	}

	return true
}

func (m *Market) fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()

	m.logger.Error(err, logger.Field{Key: "mode", Value: string(m.clock.Mode())})
}
