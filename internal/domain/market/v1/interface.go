package marketv1

import (
	"context"
	"time"
)

// Clock abstracts wall-clock access so the production loop can be driven
// deterministically in tests.
type Clock interface {
	// Now returns the current wall-clock instant.
	Now() time.Time
	// Sleep waits for d or until ctx is cancelled, whichever comes first,
	// and returns ctx.Err() when cancelled.
	Sleep(ctx context.Context, d time.Duration) error
}

// Producer yields a market's tick sequence. Produce may be called once per
// instance; the channel closes on cancellation or on an internal fault, in
// which case Err reports it.
type Producer interface {
	Produce(ctx context.Context) (<-chan Tick, error)
	Err() error
}

type realClock struct{}

// NewRealClock returns a Clock backed by the system clock.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
