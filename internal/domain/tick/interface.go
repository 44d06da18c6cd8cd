package tick

import (
	"context"
	"time"

	"github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
)

// Usecase is the recording and query surface for stored ticks.
//
//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock
type Usecase interface {
	GetLatestTick(ctx context.Context, symbol string) (*tick.Tick, error)
	GetTicks(ctx context.Context, filter tick.Filter) ([]*tick.Tick, error)
	GetTickVolume(ctx context.Context, symbol string, from time.Time, to time.Time) (int64, error)
	StoreTick(ctx context.Context, tick *tick.Tick) error
	StoreTicks(ctx context.Context, ticks []*tick.Tick) error
}
