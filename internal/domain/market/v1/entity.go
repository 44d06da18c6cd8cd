package marketv1

import (
	"time"
)

// Tick is one immutable price/volume sample for one symbol at one timestamp.
// Ticks cross the producer/consumer boundary by value; a received Tick is
// never affected by later advancement of its source symbol.
type Tick struct {
	Symbol           string    `json:"symbol"`
	Timestamp        time.Time `json:"timestamp"`
	Price            float64   `json:"price"`
	Volume           int64     `json:"volume"`
	CumulativeVolume int64     `json:"cumulative_volume"`
}
