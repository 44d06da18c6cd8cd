package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/redis"
)

func testRepository(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	config := redis.DefaultConfig()
	config.Addrs = []string{mr.Addr()}

	client := redis.NewClient(logger.NewNop(), config)
	require.NoError(t, client.Connect(context.Background()))

	return NewRepository(client, logger.NewNop()), mr
}

func TestRepository_StoreAndGetLatest(t *testing.T) {
	repo, _ := testRepository(t)
	ctx := context.Background()

	tick := marketv1.Tick{
		Symbol:           "AAPL",
		Timestamp:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Price:            187.42,
		Volume:           100,
		CumulativeVolume: 1200,
	}

	require.NoError(t, repo.StoreLatest(ctx, tick))

	got, err := repo.GetLatest(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tick, *got)
}

func TestRepository_StoreLatest_Overwrites(t *testing.T) {
	repo, _ := testRepository(t)
	ctx := context.Background()

	first := marketv1.Tick{
		Symbol:           "AAPL",
		Timestamp:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Price:            187.42,
		Volume:           100,
		CumulativeVolume: 100,
	}
	second := first
	second.Timestamp = first.Timestamp.Add(time.Second)
	second.Price = 187.61
	second.CumulativeVolume = 230

	require.NoError(t, repo.StoreLatest(ctx, first))
	require.NoError(t, repo.StoreLatest(ctx, second))

	got, err := repo.GetLatest(ctx, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second, *got)
}

func TestRepository_GetLatest_Missing(t *testing.T) {
	repo, _ := testRepository(t)

	got, err := repo.GetLatest(context.Background(), "GOOG")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_GetLatest_CorruptPayload(t *testing.T) {
	repo, mr := testRepository(t)

	mr.HSet("marketfeed:snapshot:ticks", "AAPL", "{not json")

	got, err := repo.GetLatest(context.Background(), "AAPL")

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRepository_GetAll(t *testing.T) {
	repo, _ := testRepository(t)
	ctx := context.Background()

	apple := marketv1.Tick{
		Symbol:    "AAPL",
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Price:     187.42,
	}
	microsoft := marketv1.Tick{
		Symbol:    "MSFT",
		Timestamp: time.Date(2024, 6, 1, 12, 0, 1, 0, time.UTC),
		Price:     410.11,
	}

	require.NoError(t, repo.StoreLatest(ctx, apple))
	require.NoError(t, repo.StoreLatest(ctx, microsoft))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, apple, all["AAPL"])
	assert.Equal(t, microsoft, all["MSFT"])
}

func TestRepository_GetAll_Empty(t *testing.T) {
	repo, _ := testRepository(t)

	all, err := repo.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, all)
}
