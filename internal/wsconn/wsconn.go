// Package wsconn provides a reconnecting WebSocket client with exponential
// backoff, ping keep-alive and handler-based message dispatch.
package wsconn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateClosed       State = "closed"
)

// MessageHandler receives every inbound message.
type MessageHandler func(ctx context.Context, msg []byte)

// StateChangeHandler is notified on every state transition. err is non-nil
// only for failure transitions.
type StateChangeHandler func(state State, err error)

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	Name           string // connection name for logs and errors
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64
	PingInterval   time.Duration // 0 disables keep-alive pings
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite
}

// DefaultConfig returns sensible defaults for the given endpoint.
func DefaultConfig(wsURL, name string) Config {
	return Config{
		URL:            wsURL,
		Name:           name,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 1 << 20,
		PingInterval:   30 * time.Second,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		MaxReconnects:  0,
	}
}

// ErrClosed is returned by operations on a client after Close.
var ErrClosed = errors.New("wsconn: client closed")

// ErrNotConnected is returned by Send when no connection is established.
var ErrNotConnected = errors.New("wsconn: not connected")

// Client is a WebSocket client that keeps one connection alive, reconnecting
// with exponential backoff when the peer drops it.
type Client struct {
	config Config

	mu         sync.RWMutex
	conn       *websocket.Conn
	state      State
	reconnects int
	closed     bool
	loopCancel context.CancelFunc

	onMessage     MessageHandler
	onStateChange StateChangeHandler
	handlerMu     sync.RWMutex
}

// New creates a client. Connect or ConnectWithRetry must be called next.
func New(config Config) (*Client, error) {
	u, err := url.Parse(config.URL)
	if err != nil {
		return nil, fmt.Errorf("wsconn: invalid url %q: %w", config.URL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("wsconn: unsupported scheme %q", u.Scheme)
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff < config.InitialBackoff {
		config.MaxBackoff = config.InitialBackoff
	}
	return &Client{
		config: config,
		state:  StateDisconnected,
	}, nil
}

// OnMessage sets the inbound message handler. Set it before connecting.
func (c *Client) OnMessage(fn MessageHandler) {
	c.handlerMu.Lock()
	c.onMessage = fn
	c.handlerMu.Unlock()
}

// OnStateChange sets the state transition handler. Set it before connecting.
func (c *Client) OnStateChange(fn StateChangeHandler) {
	c.handlerMu.Lock()
	c.onStateChange = fn
	c.handlerMu.Unlock()
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsConnected reports whether a live connection exists.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Connect dials once. On failure the client stays disconnected and the error
// is returned; no retry is attempted.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	c.setState(StateConnecting, nil)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected, err)
		return fmt.Errorf("wsconn[%s]: dial %s: %w", c.config.Name, c.config.URL, err)
	}

	c.startConn(ctx, conn)
	return nil
}

// ConnectWithRetry dials with exponential backoff until it succeeds, the
// reconnect budget is exhausted, or ctx is cancelled.
func (c *Client) ConnectWithRetry(ctx context.Context) error {
	backoff := c.config.InitialBackoff
	attempt := 0

	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return ErrClosed
		}
		c.mu.Unlock()

		if attempt == 0 {
			c.setState(StateConnecting, nil)
		} else {
			c.setState(StateReconnecting, nil)
		}

		conn, err := c.dial(ctx)
		if err == nil {
			c.startConn(ctx, conn)
			return nil
		}

		attempt++
		if c.config.MaxReconnects > 0 && attempt >= c.config.MaxReconnects {
			c.setState(StateDisconnected, err)
			return fmt.Errorf("wsconn[%s]: gave up after %d attempts: %w", c.config.Name, attempt, err)
		}

		select {
		case <-ctx.Done():
			c.setState(StateDisconnected, ctx.Err())
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > c.config.MaxBackoff {
			backoff = c.config.MaxBackoff
		}
	}
}

// Send writes a raw text message. Writes from concurrent goroutines are safe.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	c.mu.RLock()
	conn := c.conn
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if conn == nil {
		return ErrNotConnected
	}

	if c.config.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.WriteTimeout)
		defer cancel()
	}
	return conn.Write(ctx, websocket.MessageText, msg)
}

// SendJSON marshals v and sends it as a text message.
func (c *Client) SendJSON(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wsconn[%s]: marshal: %w", c.config.Name, err)
	}
	return c.Send(ctx, data)
}

// Close shuts the client down. Idempotent; no reconnection occurs afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	cancel := c.loopCancel
	c.loopCancel = nil
	c.state = StateClosed
	fn := c.stateHandler()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close(websocket.StatusNormalClosure, "client closing")
	}
	if fn != nil {
		fn(StateClosed, nil)
	}
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx := ctx
	if c.config.ReadTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.config.ReadTimeout)
		defer cancel()
	}

	conn, _, err := websocket.Dial(dialCtx, c.config.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.config.MaxMessageSize > 0 {
		conn.SetReadLimit(c.config.MaxMessageSize)
	}
	return conn, nil
}

// startConn installs the connection and spawns the read and ping loops.
func (c *Client) startConn(ctx context.Context, conn *websocket.Conn) {
	loopCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.conn = conn
	c.loopCancel = cancel
	c.reconnects = 0
	c.mu.Unlock()

	c.setState(StateConnected, nil)

	go c.readLoop(loopCtx, conn)
	if c.config.PingInterval > 0 {
		go c.pingLoop(loopCtx, conn)
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			c.handleDisconnect(ctx, conn, err)
			return
		}

		c.handlerMu.RLock()
		fn := c.onMessage
		c.handlerMu.RUnlock()
		if fn != nil {
			fn(ctx, data)
		}
	}
}

func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, c.config.WriteTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// handleDisconnect runs when the read loop dies. Unless Close was called, the
// client reconnects in the background with the configured backoff.
func (c *Client) handleDisconnect(ctx context.Context, conn *websocket.Conn, cause error) {
	cancelled := ctx.Err() != nil

	c.mu.Lock()
	if c.closed || c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	if c.loopCancel != nil {
		c.loopCancel()
		c.loopCancel = nil
	}
	c.mu.Unlock()

	conn.Close(websocket.StatusInternalError, "read failed")
	c.setState(StateDisconnected, cause)

	if cancelled {
		return
	}

	go func() {
		// ConnectWithRetry handles backoff and the reconnect budget.
		_ = c.ConnectWithRetry(context.WithoutCancel(ctx))
	}()
}

func (c *Client) setState(state State, err error) {
	c.mu.Lock()
	if c.closed && state != StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = state
	fn := c.stateHandler()
	c.mu.Unlock()

	if fn != nil {
		fn(state, err)
	}
}

func (c *Client) stateHandler() StateChangeHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.onStateChange
}
