package tick

import (
	"context"
	"time"

	"github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// Usecase is the usecase for stored ticks.
type Usecase struct {
	tickRepository tick.TickRepository
	logger         logger.Interface
}

// NewUsecase creates a new tick usecase.
func NewUsecase(tickRepository tick.TickRepository, logger logger.Interface) *Usecase {
	return &Usecase{tickRepository: tickRepository, logger: logger}
}

// GetLatestTick gets the latest tick for a given symbol.
func (u *Usecase) GetLatestTick(ctx context.Context, symbol string) (*tick.Tick, error) {
	latest, err := u.tickRepository.GetLatestBySymbol(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return latest, nil
}

// GetTicks gets the ticks matching a filter.
func (u *Usecase) GetTicks(ctx context.Context, filter tick.Filter) ([]*tick.Tick, error) {
	ticks, err := u.tickRepository.GetByFilter(ctx, filter)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return ticks, nil
}

// GetTickVolume gets the traded volume for a symbol over a time range.
func (u *Usecase) GetTickVolume(ctx context.Context, symbol string, from time.Time, to time.Time) (int64, error) {
	volume, err := u.tickRepository.GetVolumeBySymbol(ctx, symbol, from, to)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}
	return volume, nil
}

// StoreTick stores a tick.
func (u *Usecase) StoreTick(ctx context.Context, tickData *tick.Tick) error {
	err := u.tickRepository.Store(ctx, tickData)
	if err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// StoreTicks stores a batch of ticks.
func (u *Usecase) StoreTicks(ctx context.Context, ticks []*tick.Tick) error {
	err := u.tickRepository.StoreBatch(ctx, ticks)
	if err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}
