package realtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"

	"github.com/opsgate/console/internal/observability/metrics"
	"github.com/opsgate/console/internal/ports"
)

const (
	// DefaultSettleDelay is the pause between tearing down the old
	// connection and dialing the new one. Opening a second connection for
	// the same principal while the first is still draining makes the server
	// treat it as a duplicate session.
	DefaultSettleDelay = 500 * time.Millisecond

	defaultConnectTimeout = 10 * time.Second
	defaultMaxRetries     = 3
	defaultRetryBackoff   = 250 * time.Millisecond
)

// Reconnector re-establishes the realtime link under a new identity:
// disconnect if connected, wait out the settling delay, then dial with
// retry. The dial runs in the background against context.Background, so it
// outlives an abandoned caller without retaining any caller state.
type Reconnector struct {
	link           ports.RealtimeLink
	clock          clockwork.Clock
	settleDelay    time.Duration
	connectTimeout time.Duration
	maxRetries     uint64
	retryBackoff   time.Duration
	logger         *slog.Logger
}

// ReconnectorOptions groups dependencies for a Reconnector. Zero durations
// fall back to defaults; a nil clock uses the real one.
type ReconnectorOptions struct {
	Link           ports.RealtimeLink
	Clock          clockwork.Clock
	SettleDelay    time.Duration
	ConnectTimeout time.Duration
	MaxRetries     uint64
	RetryBackoff   time.Duration
	Logger         *slog.Logger
}

// NewReconnector constructs a Reconnector.
func NewReconnector(opts ReconnectorOptions) *Reconnector {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconnector{
		link:           opts.Link,
		clock:          clock,
		settleDelay:    settle,
		connectTimeout: connectTimeout,
		maxRetries:     maxRetries,
		retryBackoff:   backoff,
		logger:         logger,
	}
}

// Reestablish closes any active connection, then connects in the background
// after the settling delay. It returns without waiting for the connect; a
// failed connect is logged and counted but never fails the caller.
func (r *Reconnector) Reestablish() {
	if r.link.IsConnected() {
		r.link.Disconnect()
	}
	go r.connectAfterSettle()
}

func (r *Reconnector) connectAfterSettle() {
	r.clock.Sleep(r.settleDelay)

	ctx, cancel := context.WithTimeout(context.Background(), r.connectTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(r.retryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.link.Connect(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		metrics.RealtimeReconnectsTotal.WithLabelValues("failure").Inc()
		r.logger.Warn("realtime reconnect failed", "error", err)
		return
	}
	metrics.RealtimeReconnectsTotal.WithLabelValues("success").Inc()
}

var _ ports.Reconnector = (*Reconnector)(nil)
