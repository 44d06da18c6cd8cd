package tick

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
	mock "github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick/mock"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

func TestUsecase_GetLatestTick(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		mockFn   func(mock *mock.MockTickRepository)
		assertFn func(t *testing.T, latest *tick.Tick, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().GetLatestBySymbol(gomock.Any(), "AAPL").Return(&tick.Tick{
					Timestamp:        now,
					Symbol:           "AAPL",
					Price:            187.42,
					Volume:           100,
					CumulativeVolume: 1200,
				}, nil)
			},
			assertFn: func(t *testing.T, latest *tick.Tick, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "AAPL", latest.Symbol)
				assert.Equal(t, int64(1200), latest.CumulativeVolume)
			},
		},
		{
			name: "repository error",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().GetLatestBySymbol(gomock.Any(), "AAPL").Return(nil, errors.New("boom"))
			},
			assertFn: func(t *testing.T, latest *tick.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, latest)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock.NewMockTickRepository(ctrl)
			tc.mockFn(repo)

			usecase := NewUsecase(repo, logger.NewNop())
			latest, err := usecase.GetLatestTick(context.Background(), "AAPL")
			tc.assertFn(t, latest, err)
		})
	}
}

func TestUsecase_GetTicks(t *testing.T) {
	filter := tick.Filter{Symbol: "AAPL", Limit: 5}
	testCases := []struct {
		name     string
		mockFn   func(mock *mock.MockTickRepository)
		assertFn func(t *testing.T, ticks []*tick.Tick, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().GetByFilter(gomock.Any(), filter).Return([]*tick.Tick{{Symbol: "AAPL"}}, nil)
			},
			assertFn: func(t *testing.T, ticks []*tick.Tick, err error) {
				assert.NoError(t, err)
				assert.Len(t, ticks, 1)
			},
		},
		{
			name: "repository error",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().GetByFilter(gomock.Any(), filter).Return(nil, errors.New("boom"))
			},
			assertFn: func(t *testing.T, ticks []*tick.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, ticks)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock.NewMockTickRepository(ctrl)
			tc.mockFn(repo)

			usecase := NewUsecase(repo, logger.NewNop())
			ticks, err := usecase.GetTicks(context.Background(), filter)
			tc.assertFn(t, ticks, err)
		})
	}
}

func TestUsecase_GetTickVolume(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		mockFn   func(mock *mock.MockTickRepository)
		assertFn func(t *testing.T, volume int64, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().GetVolumeBySymbol(gomock.Any(), "AAPL", now, now).Return(int64(4200), nil)
			},
			assertFn: func(t *testing.T, volume int64, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(4200), volume)
			},
		},
		{
			name: "repository error",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().GetVolumeBySymbol(gomock.Any(), "AAPL", now, now).Return(int64(0), errors.New("boom"))
			},
			assertFn: func(t *testing.T, volume int64, err error) {
				assert.Error(t, err)
				assert.Equal(t, int64(0), volume)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock.NewMockTickRepository(ctrl)
			tc.mockFn(repo)

			usecase := NewUsecase(repo, logger.NewNop())
			volume, err := usecase.GetTickVolume(context.Background(), "AAPL", now, now)
			tc.assertFn(t, volume, err)
		})
	}
}

func TestUsecase_StoreTicks(t *testing.T) {
	ticks := []*tick.Tick{{Symbol: "AAPL"}, {Symbol: "MSFT"}}
	testCases := []struct {
		name     string
		mockFn   func(mock *mock.MockTickRepository)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().StoreBatch(gomock.Any(), ticks).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "repository error",
			mockFn: func(mock *mock.MockTickRepository) {
				mock.EXPECT().StoreBatch(gomock.Any(), ticks).Return(errors.New("boom"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock.NewMockTickRepository(ctrl)
			tc.mockFn(repo)

			usecase := NewUsecase(repo, logger.NewNop())
			tc.assertFn(t, usecase.StoreTicks(context.Background(), ticks))
		})
	}
}

func TestUsecase_StoreTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockTickRepository(ctrl)
	tickData := &tick.Tick{Symbol: "AAPL"}
	repo.EXPECT().Store(gomock.Any(), tickData).Return(nil)

	usecase := NewUsecase(repo, logger.NewNop())
	assert.NoError(t, usecase.StoreTick(context.Background(), tickData))
}
