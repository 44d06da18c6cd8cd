package tick

import (
	"time"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
)

// Tick is one stored tick row: a symbol's price and traded volume at an
// instant, plus the running total since its stream began.
type Tick struct {
	Timestamp        time.Time
	Symbol           string
	Price            float64
	Volume           int64
	CumulativeVolume int64
}

// FromMarketTick fills the row from an engine tick.
func (t *Tick) FromMarketTick(tick marketv1.Tick) {
	t.Timestamp = tick.Timestamp
	t.Symbol = tick.Symbol
	t.Price = tick.Price
	t.Volume = tick.Volume
	t.CumulativeVolume = tick.CumulativeVolume
}

// Filter represents the filter criteria for tick queries.
type Filter struct {
	Symbol string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
