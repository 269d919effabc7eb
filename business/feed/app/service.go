// Package app contains the live feed consumer service.
package app

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentarena/arena-terminal/business/feed/domain"
	"github.com/agentarena/arena-terminal/internal/apperror"
	"github.com/agentarena/arena-terminal/internal/logger"
	"github.com/agentarena/arena-terminal/internal/wsconn"
)

// Config holds live feed settings.
type Config struct {
	URL               string
	MaxRetries        int
	ConnectionTimeout time.Duration
	MaxEvents         int
}

// EventHandler is notified for every event appended to the log.
type EventHandler func(ev domain.Event)

// Service owns the feed WebSocket connection for the process lifetime. It
// decodes envelopes, maps them into the event union and keeps a bounded
// most-recent-first log.
type Service struct {
	cfg    Config
	logger logger.LoggerInterface
	log    *domain.EventLog

	mu        sync.Mutex
	conn      *wsconn.Client
	started   bool
	connected atomic.Bool

	handlerMu sync.RWMutex
	onEvent   EventHandler
}

// NewService creates the consumer. Call Start to connect.
func NewService(cfg Config, log logger.LoggerInterface) *Service {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 10
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = 5 * time.Second
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 50
	}
	return &Service{
		cfg:    cfg,
		logger: log,
		log:    domain.NewEventLog(cfg.MaxEvents),
	}
}

// OnEvent registers the append callback. Set it before Start.
func (s *Service) OnEvent(fn EventHandler) {
	s.handlerMu.Lock()
	s.onEvent = fn
	s.handlerMu.Unlock()
}

// Events returns the retained events, newest first.
func (s *Service) Events() []domain.Event {
	return s.log.Snapshot()
}

// Connected reports whether the feed connection is currently live.
func (s *Service) Connected() bool {
	return s.connected.Load()
}

// Start dials the feed and begins consuming. Connection retries run in the
// background; Start itself does not block on the dial.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	wsCfg := wsconn.DefaultConfig(s.cfg.URL, "feed")
	wsCfg.ReadTimeout = s.cfg.ConnectionTimeout
	wsCfg.MaxReconnects = s.cfg.MaxRetries

	conn, err := wsconn.New(wsCfg)
	if err != nil {
		return apperror.New(apperror.CodeWebSocketConnectionError,
			apperror.WithCause(err),
			apperror.WithContext("failed to create feed connection"))
	}

	conn.OnMessage(s.handleMessage)
	conn.OnStateChange(func(state wsconn.State, err error) {
		s.connected.Store(state == wsconn.StateConnected)
		if err != nil {
			s.logger.Warn(context.Background(), "feed connection state change",
				"state", string(state), "error", err)
		}
	})

	s.conn = conn
	s.started = true

	go func() {
		if err := conn.ConnectWithRetry(ctx); err != nil {
			s.logger.Error(ctx, "feed connection gave up", "error", err)
		}
	}()

	return nil
}

// Stop closes the connection. The event log keeps its contents.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.started = false
	return err
}

// handleMessage decodes one wire message. Malformed frames and unknown
// event types are dropped without touching the connection.
func (s *Service) handleMessage(ctx context.Context, raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn(ctx, "feed frame is not valid JSON", "error", err)
		return
	}

	ev, ok, err := domain.MapEnvelope(env, time.Now())
	if err != nil {
		s.logger.Warn(ctx, "feed payload decode failed",
			"type", env.Type, "error", err)
		return
	}
	if !ok {
		return
	}

	s.log.Add(ev)

	s.handlerMu.RLock()
	fn := s.onEvent
	s.handlerMu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}
