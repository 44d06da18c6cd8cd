package tick

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/simx-exchange/market-feed-service/pkg/questdb"
)

// Repository persists ticks in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
}

var _ TickRepository = (*Repository)(nil)

// NewRepository creates a new tick repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single tick.
func (r *Repository) Store(ctx context.Context, tick *Tick) error {
	query := `INSERT INTO ticks (timestamp, symbol, price, volume, cumulative_volume)
			  VALUES ($1, $2, $3, $4, $5)`

	err := r.client.Exec(ctx, query,
		tick.Timestamp, tick.Symbol, tick.Price, tick.Volume, tick.CumulativeVolume)

	if err != nil {
		return fmt.Errorf("failed to store tick: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of ticks through CopyFrom, which is how QuestDB
// wants bulk ingestion over the postgres wire.
func (r *Repository) StoreBatch(ctx context.Context, ticks []*Tick) error {
	if len(ticks) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"ticks"},
		[]string{"timestamp", "symbol", "price", "volume", "cumulative_volume"},
		pgx.CopyFromSlice(len(ticks), func(i int) ([]any, error) {
			tick := ticks[i]
			return []any{
				tick.Timestamp,
				tick.Symbol,
				tick.Price,
				tick.Volume,
				tick.CumulativeVolume,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy ticks: %w", err)
	}

	return nil
}

// GetByFilter retrieves ticks matching the filter, newest first.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Tick, error) {
	query := "SELECT timestamp, symbol, price, volume, cumulative_volume FROM ticks WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Symbol != "" {
		query += fmt.Sprintf(" AND symbol = $%d", argIndex)
		args = append(args, filter.Symbol)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []*Tick
	for rows.Next() {
		tick := &Tick{}
		err := rows.Scan(&tick.Timestamp, &tick.Symbol, &tick.Price, &tick.Volume, &tick.CumulativeVolume)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ticks, nil
}

// GetLatestBySymbol retrieves the most recent tick for a symbol, or nil when
// the symbol has no rows yet.
func (r *Repository) GetLatestBySymbol(ctx context.Context, symbol string) (*Tick, error) {
	query := `SELECT timestamp, symbol, price, volume, cumulative_volume
			  FROM ticks
			  WHERE symbol = $1
			  ORDER BY timestamp DESC
			  LIMIT 1`

	tick := &Tick{}
	err := r.client.QueryRow(ctx, query, symbol).Scan(
		&tick.Timestamp, &tick.Symbol, &tick.Price, &tick.Volume, &tick.CumulativeVolume)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest tick: %w", err)
	}

	return tick, nil
}

// GetVolumeBySymbol sums the traded volume for a symbol over a time range.
func (r *Repository) GetVolumeBySymbol(ctx context.Context, symbol string, from, to time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(volume), 0) FROM ticks
			  WHERE symbol = $1 AND timestamp >= $2 AND timestamp <= $3`

	var totalVolume int64
	err := r.client.QueryRow(ctx, query, symbol, from, to).Scan(&totalVolume)
	if err != nil {
		return 0, fmt.Errorf("failed to get volume: %w", err)
	}

	return totalVolume, nil
}
