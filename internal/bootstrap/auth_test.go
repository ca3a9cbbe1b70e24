package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgate/console/config"
	domainauth "github.com/opsgate/console/internal/domain/auth"
)

func TestBuildAuthAPI_PasswordMode(t *testing.T) {
	api, err := BuildAuthAPI(config.AuthConfig{
		Mode: config.AuthModePassword,
		API:  config.APIAuthConfig{BaseURL: "http://localhost:8080"},
	})
	require.NoError(t, err)
	assert.NotNil(t, api)
}

func TestBuildAuthAPI_SSOModeRequiresConfig(t *testing.T) {
	_, err := BuildAuthAPI(config.AuthConfig{Mode: config.AuthModeSSO})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSO_DISCOVERY_URL")
}

func TestBuildAuthAPI_UnknownMode(t *testing.T) {
	_, err := BuildAuthAPI(config.AuthConfig{Mode: config.AuthMode("saml")})
	require.Error(t, err)
}

func TestBuildSessionStore_FileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin_session.json")

	store, redisClient, err := BuildSessionStore(config.SessionConfig{
		Backend: config.SessionBackendFile,
		File:    config.FileSessionConfig{Path: path},
	})
	require.NoError(t, err)
	assert.Nil(t, redisClient)

	sess := domainauth.Session{
		Token:     "tok-1",
		Principal: domainauth.Principal{ID: 1, Role: domainauth.RoleAdmin},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
}

func TestBuildSessionStore_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	store, redisClient, err := BuildSessionStore(config.SessionConfig{
		Backend: config.SessionBackendRedis,
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	require.NotNil(t, redisClient)
	t.Cleanup(func() { _ = redisClient.Close() })

	sess := domainauth.Session{
		Token:     "tok-1",
		Principal: domainauth.Principal{ID: 1, Role: domainauth.RoleAdmin},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
}

func TestBuildSessionStore_UnknownBackend(t *testing.T) {
	_, _, err := BuildSessionStore(config.SessionConfig{Backend: config.SessionBackend("postgres")})
	require.Error(t, err)
}

func TestNewRuntime_WiresLoginService(t *testing.T) {
	cfg := config.AppConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModePassword,
			API:  config.APIAuthConfig{BaseURL: "http://localhost:8080"},
		},
		Session: config.SessionConfig{
			Backend: config.SessionBackendFile,
			File:    config.FileSessionConfig{Path: filepath.Join(t.TempDir(), "admin_session.json")},
		},
		Realtime: config.RealtimeConfig{URL: "ws://localhost:8080/realtime"},
	}
	cfg.Sanitize()

	rt, err := NewRuntime(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	assert.NotNil(t, rt.Login)
	assert.NotNil(t, rt.Bus)
	assert.NotNil(t, rt.Realtime)
	assert.NotNil(t, rt.Sessions())
	assert.False(t, rt.Realtime.IsConnected())
}
