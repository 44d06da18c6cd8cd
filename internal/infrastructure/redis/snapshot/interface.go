package snapshot

import (
	"context"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
)

// SnapshotRepository keeps the most recent tick per symbol, so readers get
// the current market picture without scanning tick history.
type SnapshotRepository interface {
	StoreLatest(ctx context.Context, tick marketv1.Tick) error
	GetLatest(ctx context.Context, symbol string) (*marketv1.Tick, error)
	GetAll(ctx context.Context) (map[string]marketv1.Tick, error)
}
