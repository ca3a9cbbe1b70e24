package realtime

// Package realtime maintains the websocket link to the realtime service.
// The sign-in flow only uses connect/disconnect/status; inbound frames are
// drained and dropped here, consumers subscribe through their own channels.

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/opsgate/console/internal/ports"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	closeWriteTimeout       = time.Second
)

// TokenSource supplies the token the connection authenticates with. It is
// read at dial time so a reconnect picks up the newest session.
type TokenSource func(ctx context.Context) (string, error)

// Client is a websocket RealtimeLink.
type Client struct {
	url    string
	tokens TokenSource
	dialer *websocket.Dialer
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a realtime client for url. Tokens must not be nil.
func NewClient(url string, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:    url,
		tokens: tokens,
		dialer: &websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout},
		logger: logger,
	}
}

// Connect dials the realtime service carrying the current session token.
// Any previous connection is closed first.
func (c *Client) Connect(ctx context.Context) error {
	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("resolve realtime token: %w", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial realtime (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("dial realtime: %w", err)
	}

	c.mu.Lock()
	prev := c.conn
	c.conn = conn
	c.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}

	go c.readLoop(conn)
	c.logger.Debug("realtime connected", "url", c.url)
	return nil
}

// IsConnected reports whether a connection is currently active.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Disconnect closes the active connection, if any. Safe to call when
// already disconnected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return
	}

	deadline := time.Now().Add(closeWriteTimeout)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = conn.Close()
	c.logger.Debug("realtime disconnected", "url", c.url)
}

// readLoop drains the connection until it errors, then clears the client
// state if this connection is still the active one. ReadMessage also
// services ping/pong control frames.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			return
		}
	}
}

var _ ports.RealtimeLink = (*Client)(nil)
