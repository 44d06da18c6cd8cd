package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simx-exchange/market-feed-service/pkg/errors"
)

// getSnapshot answers GET /api/v1/snapshot[?symbol=] from the Redis
// latest-tick hash: the whole market picture, or one symbol's entry.
func (s *Server) getSnapshot(c *gin.Context) {
	ctx := c.Request.Context()

	if symbol := c.Query("symbol"); symbol != "" {
		tick, err := s.snapshots.GetLatest(ctx, symbol)
		if err != nil {
			s.logger.ErrorContext(ctx, err)
			respondError(c, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "failed to load snapshot")
			return
		}

		if tick == nil {
			respondError(c, http.StatusNotFound, string(errors.GeneralNotFoundError), "no snapshot for symbol")
			return
		}

		respondSuccess(c, tick)
		return
	}

	ticks, err := s.snapshots.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, err)
		respondError(c, http.StatusInternalServerError, string(errors.GeneralInternalServerError), "failed to load snapshot")
		return
	}

	respondSuccess(c, ticks)
}
