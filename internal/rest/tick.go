package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	tickInfra "github.com/simx-exchange/market-feed-service/internal/infrastructure/questdb/tick"
	"github.com/simx-exchange/market-feed-service/pkg/errors"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/util"
)

// getLatestTick answers GET /api/v1/ticks/latest?symbol=.
func (s *Server) getLatestTick(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		respondError(c, http.StatusBadRequest, string(errors.GeneralBadRequestError), "symbol is required")
		return
	}

	tick, err := s.tickUsecase.GetLatestTick(c.Request.Context(), symbol)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), err, logger.Field{Key: "symbol", Value: symbol})
		respondError(c, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "failed to get latest tick")
		return
	}

	if tick == nil {
		respondError(c, http.StatusNotFound, string(errors.GeneralNotFoundError), "no ticks recorded for symbol")
		return
	}

	respondSuccess(c, tick)
}

// getTicks answers GET /api/v1/ticks?symbol=&from=&to=&limit=&offset=.
// from and to are RFC 3339 instants; both are optional.
func (s *Server) getTicks(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		respondError(c, http.StatusBadRequest, string(errors.GeneralBadRequestError), "symbol is required")
		return
	}

	filter := tickInfra.Filter{Symbol: symbol}

	var ok bool
	if filter.From, ok = parseTimeQuery(c, "from"); !ok {
		return
	}
	if filter.To, ok = parseTimeQuery(c, "to"); !ok {
		return
	}
	if filter.Limit, ok = parseIntQuery(c, "limit"); !ok {
		return
	}
	if filter.Offset, ok = parseIntQuery(c, "offset"); !ok {
		return
	}

	ticks, err := s.tickUsecase.GetTicks(c.Request.Context(), filter)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), err, logger.Field{Key: "symbol", Value: symbol})
		respondError(c, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "failed to get ticks")
		return
	}

	respondSuccess(c, ticks)
}

// getTickVolume answers GET /api/v1/volume?symbol=&from=&to=.
func (s *Server) getTickVolume(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		respondError(c, http.StatusBadRequest, string(errors.GeneralBadRequestError), "symbol is required")
		return
	}

	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}

	fromTime := time.Time{}
	if from != nil {
		fromTime = *from
	}
	toTime := time.Now().UTC()
	if to != nil {
		toTime = *to
	}

	volume, err := s.tickUsecase.GetTickVolume(c.Request.Context(), symbol, fromTime, toTime)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), err, logger.Field{Key: "symbol", Value: symbol})
		respondError(c, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "failed to get tick volume")
		return
	}

	respondSuccess(c, gin.H{"symbol": symbol, "volume": volume})
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, string(errors.GeneralBadRequestError), name+" must be RFC 3339")
		return nil, false
	}

	return util.TimePointer(ts), true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondError(c, http.StatusBadRequest, string(errors.GeneralBadRequestError), name+" must be a non-negative integer")
		return 0, false
	}

	return value, true
}
