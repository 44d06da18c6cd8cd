package snapshot

import (
	"context"
	"encoding/json"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/redis"
)

// hashKey is the single hash holding one field per symbol.
const hashKey = "snapshot:ticks"

// Repository stores latest-tick snapshots in Redis.
type Repository struct {
	client redis.Client
	logger logger.Interface
}

var _ SnapshotRepository = (*Repository)(nil)

// NewRepository creates a snapshot repository over a connected Redis client.
func NewRepository(client redis.Client, logger logger.Interface) *Repository {
	return &Repository{
		client: client,
		logger: logger,
	}
}

// StoreLatest overwrites the symbol's snapshot with the given tick.
func (r *Repository) StoreLatest(ctx context.Context, tick marketv1.Tick) error {
	buf, err := json.Marshal(tick)
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: tick.Symbol})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if _, err := r.client.HSet(ctx, hashKey, map[string]any{tick.Symbol: string(buf)}); err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: tick.Symbol})
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	return nil
}

// GetLatest returns the symbol's snapshot, or nil when none was stored yet.
func (r *Repository) GetLatest(ctx context.Context, symbol string) (*marketv1.Tick, error) {
	data, err := r.client.HGet(ctx, hashKey, symbol)
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: symbol})
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		return nil, nil
	}

	var tick marketv1.Tick
	if err := json.Unmarshal([]byte(data), &tick); err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: symbol})
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &tick, nil
}

// GetAll returns every stored snapshot keyed by symbol.
func (r *Repository) GetAll(ctx context.Context) (map[string]marketv1.Tick, error) {
	entries, err := r.client.HGetAll(ctx, hashKey)
	if err != nil {
		r.logger.ErrorContext(ctx, err)
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	ticks := make(map[string]marketv1.Tick, len(entries))
	for symbol, raw := range entries {
		var tick marketv1.Tick
		if err := json.Unmarshal([]byte(raw), &tick); err != nil {
			r.logger.ErrorContext(ctx, err, logger.Field{Key: "symbol", Value: symbol})
			return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
		}
		ticks[symbol] = tick
	}

	return ticks, nil
}
