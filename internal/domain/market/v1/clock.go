package marketv1

import (
	"time"
)

// Mode is the state of the market clock.
type Mode string

const (
	// ModeBackfill means the clock is replaying history toward the catch-up target.
	ModeBackfill Mode = "backfill"
	// ModeLive means the clock tracks wall-clock time. The transition from
	// backfill to live is one-way.
	ModeLive Mode = "live"
)

// MarketClock resolves simulated market time against wall-clock time. It is
// an explicit two-state machine: while backfilling it owns a cursor that
// advances one second per step toward a target sampled exactly once at
// construction; once caught up it flips to live and the cursor simply tracks
// whatever instant the caller samples.
type MarketClock struct {
	current time.Time
	target  time.Time
	mode    Mode
}

// NewMarketClock creates a clock for a stream requested to start at start,
// with now being the wall-clock instant at construction. now is the catch-up
// target; it is never resampled while backfilling. A start that is not
// strictly in the past is clamped to now and the clock begins live.
func NewMarketClock(start, now time.Time) *MarketClock {
	c := &MarketClock{target: now}

	if start.Before(now) {
		c.mode = ModeBackfill
		c.current = start
	} else {
		c.mode = ModeLive
		c.current = now
	}

	return c
}

// Mode returns the clock state.
func (c *MarketClock) Mode() Mode {
	return c.mode
}

// Backfilling reports whether the clock is still replaying history.
func (c *MarketClock) Backfilling() bool {
	return c.mode == ModeBackfill
}

// Current returns the cursor: the timestamp of the next backfill step, or the
// last live instant.
func (c *MarketClock) Current() time.Time {
	return c.current
}

// CatchUpTarget returns the wall-clock instant backfill is chasing.
func (c *MarketClock) CatchUpTarget() time.Time {
	return c.target
}

// SeedInstant returns the instant one second before the first emission.
// Construction-time symbol samples belong there: the first advance then lands
// exactly on the requested start and stays strictly after the seed. Call it
// before stepping the clock.
func (c *MarketClock) SeedInstant() time.Time {
	return c.current.Add(-time.Second)
}

// BackfillStep returns the timestamp to emit at and advances the cursor by
// exactly one second. When the cursor reaches the catch-up target the clock
// flips to live. Invariant: in backfill mode the cursor is strictly before
// the target, so the returned timestamp never reaches it and no timestamp is
// produced twice.
func (c *MarketClock) BackfillStep() time.Time {
	ts := c.current
	c.current = c.current.Add(time.Second)

	if !c.current.Before(c.target) {
		c.mode = ModeLive
	}

	return ts
}

// LiveStep moves the cursor to the sampled wall-clock instant and returns it.
func (c *MarketClock) LiveStep(now time.Time) time.Time {
	c.current = now
	return c.current
}
