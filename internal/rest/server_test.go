package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/internal/domain/tick/mock"
	tickInfra "github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

type stubSnapshots struct {
	latest map[string]marketv1.Tick
	err    error
}

func (s *stubSnapshots) StoreLatest(context.Context, marketv1.Tick) error {
	return nil
}

func (s *stubSnapshots) GetLatest(_ context.Context, symbol string) (*marketv1.Tick, error) {
	if s.err != nil {
		return nil, s.err
	}

	tick, ok := s.latest[symbol]
	if !ok {
		return nil, nil
	}
	return &tick, nil
}

func (s *stubSnapshots) GetAll(context.Context) (map[string]marketv1.Tick, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.latest, nil
}

func newTestServer(t *testing.T, usecase *mock.MockUsecase, snapshots *stubSnapshots) *Server {
	t.Helper()

	if snapshots == nil {
		snapshots = &stubSnapshots{}
	}

	return NewServer(config.RESTConfig{Port: 0}, usecase, snapshots, logger.NewNop())
}

func doRequest(t *testing.T, server *Server, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	server.Router().ServeHTTP(rec, req)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestServer_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := newTestServer(t, mock.NewMockUsecase(ctrl), nil)

	rec, body := doRequest(t, server, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body.Status)
}

func TestServer_GetLatestTick(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		mockFn     func(usecase *mock.MockUsecase)
		wantStatus int
		assertFn   func(t *testing.T, body Response)
	}{
		{
			name:   "returns the latest tick",
			target: "/api/v1/ticks/latest?symbol=AAPL",
			mockFn: func(usecase *mock.MockUsecase) {
				usecase.EXPECT().
					GetLatestTick(gomock.Any(), "AAPL").
					Return(&tickInfra.Tick{Symbol: "AAPL", Timestamp: base, Price: 101.5}, nil)
			},
			wantStatus: http.StatusOK,
			assertFn: func(t *testing.T, body Response) {
				assert.Equal(t, "success", body.Status)
			},
		},
		{
			name:       "rejects a missing symbol",
			target:     "/api/v1/ticks/latest",
			mockFn:     func(usecase *mock.MockUsecase) {},
			wantStatus: http.StatusBadRequest,
			assertFn: func(t *testing.T, body Response) {
				assert.Equal(t, string(errors.GeneralBadRequestError), body.Code)
			},
		},
		{
			name:   "maps an unknown symbol to 404",
			target: "/api/v1/ticks/latest?symbol=NOPE",
			mockFn: func(usecase *mock.MockUsecase) {
				usecase.EXPECT().
					GetLatestTick(gomock.Any(), "NOPE").
					Return(nil, nil)
			},
			wantStatus: http.StatusNotFound,
			assertFn: func(t *testing.T, body Response) {
				assert.Equal(t, string(errors.GeneralNotFoundError), body.Code)
			},
		},
		{
			name:   "maps a storage failure to 500",
			target: "/api/v1/ticks/latest?symbol=AAPL",
			mockFn: func(usecase *mock.MockUsecase) {
				usecase.EXPECT().
					GetLatestTick(gomock.Any(), "AAPL").
					Return(nil, errors.NewTracer("questdb unavailable"))
			},
			wantStatus: http.StatusInternalServerError,
			assertFn: func(t *testing.T, body Response) {
				assert.Equal(t, string(errors.GeneralInternalServerError), body.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			usecase := mock.NewMockUsecase(ctrl)
			tc.mockFn(usecase)

			server := newTestServer(t, usecase, nil)
			rec, body := doRequest(t, server, tc.target)

			assert.Equal(t, tc.wantStatus, rec.Code)
			tc.assertFn(t, body)
		})
	}
}

func TestServer_GetTicks(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("parses the full filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usecase := mock.NewMockUsecase(ctrl)
		usecase.EXPECT().
			GetTicks(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter tickInfra.Filter) ([]*tickInfra.Tick, error) {
				assert.Equal(t, "AAPL", filter.Symbol)
				require.NotNil(t, filter.From)
				assert.Equal(t, base, *filter.From)
				require.NotNil(t, filter.To)
				assert.Equal(t, base.Add(time.Minute), *filter.To)
				assert.Equal(t, 10, filter.Limit)
				assert.Equal(t, 5, filter.Offset)

				return []*tickInfra.Tick{{Symbol: "AAPL", Timestamp: base, Price: 100}}, nil
			})

		server := newTestServer(t, usecase, nil)
		target := "/api/v1/ticks?symbol=AAPL&from=2024-05-01T09:30:00Z&to=2024-05-01T09:31:00Z&limit=10&offset=5"
		rec, body := doRequest(t, server, target)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", body.Status)
	})

	t.Run("rejects a malformed from instant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		server := newTestServer(t, mock.NewMockUsecase(ctrl), nil)

		rec, body := doRequest(t, server, "/api/v1/ticks?symbol=AAPL&from=yesterday")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(errors.GeneralBadRequestError), body.Code)
	})

	t.Run("rejects a negative limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		server := newTestServer(t, mock.NewMockUsecase(ctrl), nil)

		rec, body := doRequest(t, server, "/api/v1/ticks?symbol=AAPL&limit=-1")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(errors.GeneralBadRequestError), body.Code)
	})
}

func TestServer_GetTickVolume(t *testing.T) {
	ctrl := gomock.NewController(t)
	usecase := mock.NewMockUsecase(ctrl)
	usecase.EXPECT().
		GetTickVolume(gomock.Any(), "MSFT", gomock.Any(), gomock.Any()).
		Return(int64(12345), nil)

	server := newTestServer(t, usecase, nil)
	rec, body := doRequest(t, server, "/api/v1/volume?symbol=MSFT")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body.Status)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12345), data["volume"])
}

func TestServer_GetSnapshot(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	snapshots := &stubSnapshots{
		latest: map[string]marketv1.Tick{
			"AAPL": {Symbol: "AAPL", Timestamp: base, Price: 101},
			"MSFT": {Symbol: "MSFT", Timestamp: base, Price: 402},
		},
	}

	t.Run("returns the whole market picture", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		server := newTestServer(t, mock.NewMockUsecase(ctrl), snapshots)

		rec, body := doRequest(t, server, "/api/v1/snapshot")

		assert.Equal(t, http.StatusOK, rec.Code)
		data, ok := body.Data.(map[string]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})

	t.Run("returns one symbol", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		server := newTestServer(t, mock.NewMockUsecase(ctrl), snapshots)

		rec, body := doRequest(t, server, "/api/v1/snapshot?symbol=AAPL")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", body.Status)
	})

	t.Run("maps a missing symbol to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		server := newTestServer(t, mock.NewMockUsecase(ctrl), snapshots)

		rec, body := doRequest(t, server, "/api/v1/snapshot?symbol=NOPE")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, string(errors.GeneralNotFoundError), body.Code)
	})
}
