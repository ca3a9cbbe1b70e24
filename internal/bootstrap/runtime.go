package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/opsgate/console/config"
	"github.com/opsgate/console/internal/adapters/authroles"
	"github.com/opsgate/console/internal/bus"
	"github.com/opsgate/console/internal/ports"
	"github.com/opsgate/console/internal/realtime"
	"github.com/opsgate/console/internal/service"
)

// Runtime wires the full sign-in flow: credential exchange, role gate,
// session store, event bus, realtime link, and the login service on top.
type Runtime struct {
	Login    *service.LoginService
	Bus      *bus.Bus
	Realtime *realtime.Client

	sessions    ports.SessionStore
	redisClient *redis.Client
}

// NewRuntime builds the runtime from configuration.
func NewRuntime(cfg config.AppConfig, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}

	api, err := BuildAuthAPI(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("build auth api: %w", err)
	}

	sessions, redisClient, err := BuildSessionStore(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("build session store: %w", err)
	}

	eventBus := bus.New(logger)

	// The link reads its token at dial time so a reconnect always carries
	// the newest persisted session.
	link := realtime.NewClient(cfg.Realtime.URL, func(ctx context.Context) (string, error) {
		sess, err := sessions.Current(ctx)
		if err != nil {
			return "", err
		}
		return sess.Token, nil
	}, logger)

	reconnector := realtime.NewReconnector(realtime.ReconnectorOptions{
		Link:           link,
		SettleDelay:    cfg.Realtime.SettleDelay,
		ConnectTimeout: cfg.Realtime.ConnectTimeout,
		MaxRetries:     uint64(cfg.Realtime.MaxRetries),
		RetryBackoff:   cfg.Realtime.RetryBackoff,
		Logger:         logger,
	})

	login := service.NewLoginService(service.LoginServiceOptions{
		API:      api,
		Gate:     authroles.AdminGate{},
		Sessions: sessions,
		Bus:      eventBus,
		Realtime: reconnector,
		Logger:   logger,
	})

	return &Runtime{
		Login:       login,
		Bus:         eventBus,
		Realtime:    link,
		sessions:    sessions,
		redisClient: redisClient,
	}, nil
}

// Sessions exposes the configured session store.
func (r *Runtime) Sessions() ports.SessionStore { return r.sessions }

// Close releases runtime resources.
func (r *Runtime) Close() error {
	r.Realtime.Disconnect()
	if r.redisClient != nil {
		return r.redisClient.Close()
	}
	return nil
}
