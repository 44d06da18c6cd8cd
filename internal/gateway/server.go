package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	"github.com/simx-exchange/market-feed-service/internal/infrastructure/redis/snapshot"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/httplib/healthcheck"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// MarketFactory builds one market per subscription. The gateway never shares
// a market between connections; each client gets its own stream from its own
// start instant.
type MarketFactory func(symbols []string, start time.Time) marketv1.Producer

// Server is the WebSocket streaming gateway. Each accepted connection
// subscribes with a symbol list and an optional start instant, then receives
// that market's ticks as JSON frames until it disconnects.
type Server struct {
	config    config.GatewayConfig
	factory   MarketFactory
	snapshots snapshot.SnapshotRepository
	logger    logger.Interface

	upgrader websocket.Upgrader
	server   *http.Server
}

// NewServer wires the gateway routes: /ws for streaming, /snapshot for late
// joiners, /health probing the given dependencies.
func NewServer(
	cfg config.GatewayConfig,
	factory MarketFactory,
	snapshots snapshot.SnapshotRepository,
	checks map[string]healthcheck.Pinger,
	logger logger.Interface,
) *Server {
	s := &Server{
		config:    cfg,
		factory:   factory,
		snapshots: snapshots,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleStream)
	mux.HandleFunc("/snapshot", s.handleSnapshot)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: healthcheck.New(checks).Handler(mux),
	}

	return s
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("gateway listening", logger.Field{
		Key:   "addr",
		Value: s.server.Addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown stops accepting connections and closes the listener. Active
// streams end when their clients observe the closed connection.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleStream upgrades the connection and hands it to a session. The
// session owns the connection from here on.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.ErrorContext(r.Context(), err, logger.Field{
			Key:   "action",
			Value: "ws_upgrade",
		})
		return
	}

	session := newSession(conn, s.config, s.factory, s.logger)
	session.run(r.Context())
}

// handleSnapshot serves the current latest-tick-per-symbol picture so a
// client can render the market before its stream catches up.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ticks, err := s.snapshots.GetAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), err, logger.Field{
			Key:   "action",
			Value: "load_snapshot",
		})
		http.Error(w, "failed to load snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ticks); err != nil {
		s.logger.ErrorContext(r.Context(), err, logger.Field{
			Key:   "action",
			Value: "encode_snapshot",
		})
	}
}
