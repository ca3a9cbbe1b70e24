package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	"github.com/opsgate/console/internal/ports"
)

func TestCurrent_NoSession(t *testing.T) {
	svc, _, _, _, _ := newServiceWithDoubles()

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoSession)
}

func TestCurrent_ReturnsPersistedSession(t *testing.T) {
	svc, _, _, _, _ := newServiceWithDoubles()
	require.NoError(t, svc.Submit(context.Background(), validCreds(), nil))

	sess, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", sess.Token)
	assert.Equal(t, testNow, sess.CreatedAt)
}

func TestLogout_ClearsSessionAndPublishes(t *testing.T) {
	svc, _, store, _, bus := newServiceWithDoubles()
	require.NoError(t, svc.Submit(context.Background(), validCreds(), nil))

	require.NoError(t, svc.Logout(context.Background()))

	_, err := store.Current(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoSession)

	require.Len(t, bus.events, 2)
	assert.Equal(t, domainauth.ChannelAdminLoginSuccess, bus.events[0].channel)
	assert.Equal(t, domainauth.ChannelAdminLogout, bus.events[1].channel)
	assert.Equal(t, "mock-token-1", bus.events[1].evt.Token)
}

func TestLogout_NoSessionIsNoOp(t *testing.T) {
	svc, _, _, _, bus := newServiceWithDoubles()

	require.NoError(t, svc.Logout(context.Background()))
	assert.Empty(t, bus.events)
}
