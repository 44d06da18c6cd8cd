package marketv1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMarketClock(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		start           time.Time
		expectedMode    Mode
		expectedCurrent time.Time
	}{
		{
			name:            "past start enters backfill",
			start:           now.Add(-3 * time.Second),
			expectedMode:    ModeBackfill,
			expectedCurrent: now.Add(-3 * time.Second),
		},
		{
			name:            "start equal to now goes straight to live",
			start:           now,
			expectedMode:    ModeLive,
			expectedCurrent: now,
		},
		{
			name:            "future start is clamped to now",
			start:           now.Add(time.Hour),
			expectedMode:    ModeLive,
			expectedCurrent: now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := NewMarketClock(tc.start, now)

			assert.Equal(t, tc.expectedMode, clock.Mode())
			assert.Equal(t, tc.expectedCurrent, clock.Current())
			assert.Equal(t, now, clock.CatchUpTarget())
		})
	}
}

func TestMarketClock_BackfillStep(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMarketClock(now.Add(-3*time.Second), now)

	var steps []time.Time
	for clock.Backfilling() {
		steps = append(steps, clock.BackfillStep())
	}

	assert.Equal(t, []time.Time{
		now.Add(-3 * time.Second),
		now.Add(-2 * time.Second),
		now.Add(-1 * time.Second),
	}, steps)
	assert.Equal(t, ModeLive, clock.Mode())
}

func TestMarketClock_BackfillStep_SubSecondRemainder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMarketClock(now.Add(-2500*time.Millisecond), now)

	var steps []time.Time
	for clock.Backfilling() {
		steps = append(steps, clock.BackfillStep())
	}

	// increments are exactly one second; the final step lands half a second
	// short of the target and the next would reach it, so three steps total
	assert.Len(t, steps, 3)
	assert.Equal(t, now.Add(-2500*time.Millisecond), steps[0])
	assert.Equal(t, now.Add(-500*time.Millisecond), steps[2])
	assert.True(t, steps[2].Before(clock.CatchUpTarget()))
}

func TestMarketClock_TransitionIsOneWay(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMarketClock(now.Add(-time.Second), now)

	assert.True(t, clock.Backfilling())
	clock.BackfillStep()
	assert.False(t, clock.Backfilling())

	clock.LiveStep(now.Add(time.Second))
	assert.Equal(t, ModeLive, clock.Mode())
	assert.Equal(t, now.Add(time.Second), clock.Current())
}

func TestMarketClock_LiveStep(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMarketClock(now, now)

	assert.Equal(t, now.Add(time.Second), clock.LiveStep(now.Add(time.Second)))
	assert.Equal(t, now.Add(2*time.Second), clock.LiveStep(now.Add(2*time.Second)))
	assert.Equal(t, now.Add(2*time.Second), clock.Current())
}

func TestMarketClock_SeedInstant(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	backfilling := NewMarketClock(now.Add(-3*time.Second), now)
	assert.Equal(t, now.Add(-4*time.Second), backfilling.SeedInstant())
	assert.True(t, backfilling.SeedInstant().Before(backfilling.BackfillStep()))

	live := NewMarketClock(now, now)
	assert.Equal(t, now.Add(-time.Second), live.SeedInstant())
}
