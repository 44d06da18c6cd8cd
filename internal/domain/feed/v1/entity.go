package feedv1

import (
	"encoding/json"
	"time"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
)

// TickEnvelope is the wire form of one tick on the feed topic. It is the
// contract between the feed producer and every downstream consumer, kept
// separate from the engine's Tick so either side can evolve.
type TickEnvelope struct {
	Symbol           string    `json:"symbol"`
	Timestamp        time.Time `json:"timestamp"`
	Price            float64   `json:"price"`
	Volume           int64     `json:"volume"`
	CumulativeVolume int64     `json:"cumulative_volume"`
}

// NewTickEnvelope wraps a tick for the wire.
func NewTickEnvelope(tick marketv1.Tick) TickEnvelope {
	return TickEnvelope{
		Symbol:           tick.Symbol,
		Timestamp:        tick.Timestamp,
		Price:            tick.Price,
		Volume:           tick.Volume,
		CumulativeVolume: tick.CumulativeVolume,
	}
}

// Tick converts the envelope back to the engine representation.
func (e TickEnvelope) Tick() marketv1.Tick {
	return marketv1.Tick{
		Symbol:           e.Symbol,
		Timestamp:        e.Timestamp,
		Price:            e.Price,
		Volume:           e.Volume,
		CumulativeVolume: e.CumulativeVolume,
	}
}

// ToBytes encodes a tick as its topic payload.
func ToBytes(tick marketv1.Tick) ([]byte, error) {
	return json.Marshal(NewTickEnvelope(tick))
}

// FromBytes decodes a topic payload.
func FromBytes(data []byte) (TickEnvelope, error) {
	var envelope TickEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return TickEnvelope{}, err
	}

	return envelope, nil
}
