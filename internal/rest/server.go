package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	tickDomain "github.com/simx-exchange/market-feed-service/internal/domain/tick"
	"github.com/simx-exchange/market-feed-service/internal/infrastructure/redis/snapshot"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/util"
)

// Server is the recorder-side HTTP query API: latest tick, tick history,
// traded volume and the current snapshot, all read-only.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logger.Interface

	tickUsecase tickDomain.Usecase
	snapshots   snapshot.SnapshotRepository
}

// NewServer wires the query routes over the tick usecase and the snapshot
// repository.
func NewServer(
	cfg config.RESTConfig,
	tickUsecase tickDomain.Usecase,
	snapshots snapshot.SnapshotRepository,
	logger logger.Interface,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:      router,
		logger:      logger,
		tickUsecase: tickUsecase,
		snapshots:   snapshots,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	s.registerRoutes()

	return s
}

// Router exposes the gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("query api listening", logger.Field{
		Key:   "addr",
		Value: s.server.Addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.router.Use(requestID())

	s.router.GET("/health", s.health)

	api := s.router.Group("/api/v1")
	api.GET("/ticks", s.getTicks)
	api.GET("/ticks/latest", s.getLatestTick)
	api.GET("/volume", s.getTickVolume)
	api.GET("/snapshot", s.getSnapshot)
}

// requestID stamps every request context so handler logs correlate.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := util.WithRequestID(c.Request.Context(), c.GetHeader("X-Request-ID"))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	respondSuccess(c, gin.H{"service": "market-feed-recorder"})
}
