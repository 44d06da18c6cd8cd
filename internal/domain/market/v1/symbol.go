package marketv1

import (
	"fmt"
	"time"

	pricingv1 "github.com/simx-exchange/market-feed-service/internal/domain/pricing/v1"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
)

// Symbol is one tracked instrument: its identity, its most recent sample and
// the generator that drives its price path. The construction-time sample is
// state only; it is never emitted as a tick. Only Advance produces ticks.
type Symbol struct {
	id        string
	generator pricingv1.Generator
	last      Tick
}

// NewSymbol creates a Symbol whose first sample is pinned at ts with the
// generator's initial price and zero volume. Every emitted tick must carry a
// timestamp strictly after ts.
func NewSymbol(id string, ts time.Time, generator pricingv1.Generator) *Symbol {
	return &Symbol{
		id:        id,
		generator: generator,
		last: Tick{
			Symbol:    id,
			Timestamp: ts,
			Price:     generator.InitialPrice(),
		},
	}
}

// ID returns the symbol identifier.
func (s *Symbol) ID() string {
	return s.id
}

// Last returns a copy of the most recent sample.
func (s *Symbol) Last() Tick {
	return s.last
}

// Advance moves the symbol to ts, which must be strictly after the last
// sample's timestamp, and returns the new sample. The returned Tick is a
// value copy; mutating the symbol afterwards never changes it.
func (s *Symbol) Advance(ts time.Time) (Tick, error) {
	if !ts.After(s.last.Timestamp) {
		return Tick{}, errors.NewErrorDetails(
			fmt.Sprintf("advance timestamp %s is not after last sample %s for %s",
				ts.Format(time.RFC3339Nano), s.last.Timestamp.Format(time.RFC3339Nano), s.id),
			string(errors.InvalidTimeOrder),
			"timestamp",
		)
	}

	price, volume := s.generator.Next(s.last.Price)
	s.last = Tick{
		Symbol:           s.id,
		Timestamp:        ts,
		Price:            price,
		Volume:           volume,
		CumulativeVolume: s.last.CumulativeVolume + volume,
	}

	return s.last, nil
}
