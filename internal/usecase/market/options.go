package market

import "time"

const (
	defaultInterval = time.Second
	defaultBuffer   = 64
)

// Options tune the live cadence and output buffering of a Market.
type Options struct {
	// Interval is the wall-clock pause between live steps.
	Interval time.Duration
	// Buffer is the outbound channel capacity. A full channel blocks the
	// producer until the consumer drains it; ticks are never dropped.
	Buffer int
}

// DefaultOptions returns the production defaults: one live step per second
// over a 64-tick buffer.
func DefaultOptions() Options {
	return Options{
		Interval: defaultInterval,
		Buffer:   defaultBuffer,
	}
}
