package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/opsgate/console/config"
	"github.com/opsgate/console/internal/adapters/authapi"
	"github.com/opsgate/console/internal/adapters/sessionfile"
	"github.com/opsgate/console/internal/adapters/sessionredis"
	"github.com/opsgate/console/internal/adapters/ssoauth"
	"github.com/opsgate/console/internal/ports"
)

// appDirName is the per-user directory holding client state.
const appDirName = "opsgate-console"

// BuildAuthAPI creates the credential exchange for the configured auth mode.
func BuildAuthAPI(cfg config.AuthConfig) (ports.AuthAPI, error) {
	switch cfg.Mode {
	case config.AuthModePassword:
		return authapi.NewClient(authapi.ClientConfig{
			BaseURL:   cfg.API.BaseURL,
			LoginPath: cfg.API.LoginPath,
			Timeout:   cfg.API.Timeout,
		})

	case config.AuthModeSSO:
		sso := cfg.SSO
		if sso.DiscoveryURL == "" || sso.ClientID == "" || sso.ClientSecret == "" {
			return nil, errors.New("sso auth mode requires SSO_DISCOVERY_URL, SSO_CLIENT_ID and SSO_CLIENT_SECRET")
		}
		return ssoauth.NewProvider(ssoauth.ProviderConfig{
			ClientID:     sso.ClientID,
			ClientSecret: sso.ClientSecret,
			Scope:        sso.Scope,
			DiscoveryURL: sso.DiscoveryURL,
			RoleClaim:    sso.RoleClaim,
		})

	default:
		return nil, fmt.Errorf("unsupported auth mode: %q", cfg.Mode)
	}
}

// BuildSessionStore creates the session store for the configured backend.
// The returned redis client is non-nil only for the redis backend; the
// caller owns closing it.
func BuildSessionStore(cfg config.SessionConfig) (ports.SessionStore, *redis.Client, error) {
	switch cfg.Backend {
	case config.SessionBackendFile:
		path := cfg.File.Path
		if path == "" {
			base, err := os.UserConfigDir()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve user config dir: %w", err)
			}
			path = filepath.Join(base, appDirName, sessionfile.DefaultFileName)
		}
		store, err := sessionfile.NewStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return sessionredis.NewStore(client), client, nil

	default:
		return nil, nil, fmt.Errorf("unsupported session backend: %q", cfg.Backend)
	}
}
