package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	marketv1 "github.com/simx-exchange/market-feed-service/internal/domain/market/v1"
	streamv1 "github.com/simx-exchange/market-feed-service/internal/domain/stream/v1"
	"github.com/simx-exchange/market-feed-service/pkg/config"
	"github.com/simx-exchange/market-feed-service/pkg/logger"
)

// subscribeTimeout bounds how long a client may take to send its
// subscription after connecting.
const subscribeTimeout = 10 * time.Second

// session is one streaming connection: it reads the subscription, builds the
// market and pumps ticks until the client goes away. The session goroutine is
// the only writer on the connection; a reader goroutine exists solely to
// observe pongs and client close.
type session struct {
	id      string
	conn    *websocket.Conn
	config  config.GatewayConfig
	factory MarketFactory
	logger  logger.Interface
}

func newSession(conn *websocket.Conn, cfg config.GatewayConfig, factory MarketFactory, log logger.Interface) *session {
	return &session{
		id:      ulid.Make().String(),
		conn:    conn,
		config:  cfg,
		factory: factory,
		logger:  log,
	}
}

func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)

	request, err := s.readSubscription()
	if err != nil {
		s.logger.WarnContext(ctx, "rejected stream subscription",
			logger.Field{Key: "stream_id", Value: s.id},
			logger.Field{Key: "reason", Value: err.Error()},
		)
		s.writeFrame(streamv1.ErrorFrame(err.Error()))
		return
	}

	// The default start is captured here, once, at request receipt.
	start := time.Now()
	if request.Start != nil {
		start = *request.Start
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	producer := s.factory(request.Symbols, start)
	ticks, err := producer.Produce(ctx)
	if err != nil {
		s.writeFrame(streamv1.ErrorFrame(err.Error()))
		return
	}

	go s.watchClient(cancel)

	if err := s.writeFrame(streamv1.SubscribedFrame(s.id, request.Symbols)); err != nil {
		return
	}

	s.logger.InfoContext(ctx, "stream subscribed",
		logger.Field{Key: "stream_id", Value: s.id},
		logger.Field{Key: "symbols", Value: request.Symbols},
		logger.Field{Key: "start", Value: start},
	)

	s.pump(ctx, producer, ticks)
}

// readSubscription reads and validates the first frame.
func (s *session) readSubscription() (*streamv1.SubscribeRequest, error) {
	_ = s.conn.SetReadDeadline(time.Now().Add(subscribeTimeout))

	_, payload, err := s.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var request streamv1.SubscribeRequest
	if err := json.Unmarshal(payload, &request); err != nil {
		return nil, err
	}

	request.Normalize()
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return &request, nil
}

// watchClient drains inbound frames so pongs and the client's close frame
// are observed; any read error cancels the stream.
func (s *session) watchClient(cancel context.CancelFunc) {
	defer cancel()

	_ = s.conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// pump forwards ticks until the stream closes or the client disconnects,
// pinging on the configured period to keep the connection alive.
func (s *session) pump(ctx context.Context, producer marketv1.Producer, ticks <-chan marketv1.Tick) {
	pinger := time.NewTicker(s.config.PingPeriod)
	defer pinger.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pinger.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case tick, ok := <-ticks:
			if !ok {
				if err := producer.Err(); err != nil {
					s.logger.ErrorContext(ctx, err, logger.Field{
						Key:   "stream_id",
						Value: s.id,
					})
					s.writeFrame(streamv1.ErrorFrame("stream terminated"))
				}
				return
			}

			if err := s.writeFrame(streamv1.TickFrame(s.id, tick)); err != nil {
				return
			}
		}
	}
}

func (s *session) writeFrame(frame streamv1.Frame) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteJSON(frame)
}
