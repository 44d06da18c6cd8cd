package streamv1

import (
	"strings"
	"time"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
)

// SubscribeRequest is the first frame a streaming client sends: which
// symbols to tick and, optionally, how far in the past the stream starts.
// A nil Start means "now at request receipt".
type SubscribeRequest struct {
	Symbols []string   `json:"symbols"`
	Start   *time.Time `json:"start,omitempty"`
}

// Normalize trims and uppercases the requested symbols in place, preserving
// the caller's order.
func (r *SubscribeRequest) Normalize() {
	for i, symbol := range r.Symbols {
		r.Symbols[i] = strings.ToUpper(strings.TrimSpace(symbol))
	}
}

// Validate enforces the transport-level subscription policy: at least one
// symbol, none blank, no duplicates.
func (r *SubscribeRequest) Validate() error {
	if len(r.Symbols) == 0 {
		return errors.NewErrorDetails(
			"at least one symbol is required",
			string(errors.InvalidStreamRequest),
			"symbols",
		)
	}

	seen := make(map[string]struct{}, len(r.Symbols))
	for _, symbol := range r.Symbols {
		if symbol == "" {
			return errors.NewErrorDetails(
				"symbols must not be blank",
				string(errors.InvalidStreamRequest),
				"symbols",
			)
		}
		if _, dup := seen[symbol]; dup {
			return errors.NewErrorDetails(
				"duplicate symbol "+symbol,
				string(errors.InvalidStreamRequest),
				"symbols",
			)
		}
		seen[symbol] = struct{}{}
	}

	return nil
}

// Frame types sent by the gateway.
const (
	FrameSubscribed = "subscribed"
	FrameTick       = "tick"
	FrameError      = "error"
)

// Frame is one JSON message on a stream connection.
type Frame struct {
	Type     string         `json:"type"`
	StreamID string         `json:"stream_id,omitempty"`
	Symbols  []string       `json:"symbols,omitempty"`
	Message  string         `json:"message,omitempty"`
	Tick     *marketv1.Tick `json:"tick,omitempty"`
}

// SubscribedFrame acknowledges a subscription.
func SubscribedFrame(streamID string, symbols []string) Frame {
	return Frame{
		Type:     FrameSubscribed,
		StreamID: streamID,
		Symbols:  symbols,
	}
}

// TickFrame wraps one tick for the wire.
func TickFrame(streamID string, tick marketv1.Tick) Frame {
	return Frame{
		Type:     FrameTick,
		StreamID: streamID,
		Tick:     &tick,
	}
}

// ErrorFrame reports a rejected or failed stream.
func ErrorFrame(message string) Frame {
	return Frame{
		Type:    FrameError,
		Message: message,
	}
}
