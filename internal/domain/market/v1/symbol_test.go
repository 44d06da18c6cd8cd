package marketv1

import (
	"testing"
	"time"

	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns a fixed sequence of price/volume pairs.
type scriptedGenerator struct {
	initial float64
	prices  []float64
	volumes []int64
	calls   int
}

func (g *scriptedGenerator) InitialPrice() float64 {
	return g.initial
}

func (g *scriptedGenerator) Next(previousPrice float64) (float64, int64) {
	i := g.calls
	g.calls++
	return g.prices[i], g.volumes[i]
}

func TestNewSymbol(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	symbol := NewSymbol("AAPL", start, &scriptedGenerator{initial: 100})

	assert.Equal(t, "AAPL", symbol.ID())
	assert.Equal(t, Tick{
		Symbol:    "AAPL",
		Timestamp: start,
		Price:     100,
	}, symbol.Last())
}

func TestSymbol_Advance(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := &scriptedGenerator{
		initial: 100,
		prices:  []float64{101.5, 99.75},
		volumes: []int64{30, 12},
	}
	symbol := NewSymbol("AAPL", start, gen)

	first, err := symbol.Advance(start.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, Tick{
		Symbol:           "AAPL",
		Timestamp:        start.Add(time.Second),
		Price:            101.5,
		Volume:           30,
		CumulativeVolume: 30,
	}, first)

	second, err := symbol.Advance(start.Add(2 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(12), second.Volume)
	assert.Equal(t, int64(42), second.CumulativeVolume)
	assert.Equal(t, second, symbol.Last())
}

func TestSymbol_Advance_InvalidTimeOrder(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		ts   time.Time
	}{
		{name: "same timestamp", ts: start},
		{name: "earlier timestamp", ts: start.Add(-time.Second)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			symbol := NewSymbol("AAPL", start, &scriptedGenerator{initial: 100})

			_, err := symbol.Advance(tc.ts)
			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidTimeOrder))

			// a failed advance leaves the sample untouched
			assert.Equal(t, start, symbol.Last().Timestamp)
			assert.Equal(t, float64(100), symbol.Last().Price)
		})
	}
}

func TestSymbol_Advance_ReturnsCopy(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := &scriptedGenerator{
		initial: 100,
		prices:  []float64{101, 102},
		volumes: []int64{10, 20},
	}
	symbol := NewSymbol("AAPL", start, gen)

	retained, err := symbol.Advance(start.Add(time.Second))
	require.NoError(t, err)

	_, err = symbol.Advance(start.Add(2 * time.Second))
	require.NoError(t, err)

	assert.Equal(t, float64(101), retained.Price)
	assert.Equal(t, int64(10), retained.Volume)
	assert.Equal(t, int64(10), retained.CumulativeVolume)
	assert.Equal(t, start.Add(time.Second), retained.Timestamp)
}
