package config

import "time"

const (
	minSettleDelay = 50 * time.Millisecond
	maxSettleDelay = 10 * time.Second
	maxRetries     = 10
)

// RealtimeConfig configures the realtime connection and its reconnect
// behavior.
type RealtimeConfig struct {
	// URL is the websocket endpoint of the realtime service.
	URL string `env:"URL" envDefault:"ws://localhost:8080/realtime"`

	// SettleDelay is the pause between closing the previous connection and
	// dialing the new one. Required so the server releases the old identity
	// before the new connection claims it; tunable, never zero.
	SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"500ms"`

	// ConnectTimeout bounds the background dial including retries.
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`

	// MaxRetries is the number of dial retries after the first attempt.
	MaxRetries int `env:"MAX_RETRIES" envDefault:"3"`

	// RetryBackoff is the base backoff between dial retries.
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" envDefault:"250ms"`
}

// Sanitize applies guardrails to realtime configuration values.
func (r *RealtimeConfig) Sanitize() {
	if r.SettleDelay < minSettleDelay {
		r.SettleDelay = minSettleDelay
	}
	if r.SettleDelay > maxSettleDelay {
		r.SettleDelay = maxSettleDelay
	}
	if r.ConnectTimeout <= 0 {
		r.ConnectTimeout = 10 * time.Second
	}
	if r.MaxRetries < 0 {
		r.MaxRetries = 0
	}
	if r.MaxRetries > maxRetries {
		r.MaxRetries = maxRetries
	}
	if r.RetryBackoff <= 0 {
		r.RetryBackoff = 250 * time.Millisecond
	}
}
