package ports

// Package ports defines interfaces (hexagonal ports) for the admin sign-in
// flow. Implementations live in internal/adapters, internal/bus, and
// internal/realtime; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/opsgate/console/internal/domain/auth"
)

// Grant is the normalized result of a successful credential exchange.
// Principal is nil when the identity service returned a token without any
// usable principal record; the role gate treats that as a denial.
type Grant struct {
	Token     string
	Principal *domainauth.Principal
}

// AuthAPI exchanges an identifier and secret for a token and principal at
// the remote identity service. Implementations normalize provider-specific
// response shapes into one canonical Grant at this boundary.
type AuthAPI interface {
	Login(ctx context.Context, identifier, secret string) (Grant, error)
}

// RoleGate admits or rejects an exchanged principal. Client-side
// defense-in-depth: the identity service is assumed to enforce the same
// policy, but a non-admin principal must never reach the session store.
type RoleGate interface {
	Admit(p *domainauth.Principal) error
}

// SessionStore persists the single admin session. Save is idempotent and
// last-write-wins; the record survives process restarts of the same client
// installation.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Current(ctx context.Context) (domainauth.Session, error)
	Clear(ctx context.Context) error
}

// ErrNoSession is returned by SessionStore.Current when no admin session is
// persisted.
type noSessionError struct{}

func (noSessionError) Error() string { return "no admin session" }

var ErrNoSession error = noSessionError{}

// Listener consumes a session event. Each listener's effect is its own
// concern; panics are isolated by the bus.
type Listener func(evt domainauth.SessionEvent)

// EventBus broadcasts session events to in-process subscribers,
// synchronously and in registration order.
type EventBus interface {
	Subscribe(channel string, fn Listener) (unsubscribe func())
	Publish(channel string, evt domainauth.SessionEvent)
}

// RealtimeLink is the realtime connection boundary. The sign-in flow only
// depends on connect/disconnect/status; the wire protocol is the link's
// concern.
type RealtimeLink interface {
	IsConnected() bool
	Disconnect()
	Connect(ctx context.Context) error
}

// Reconnector tears down any active realtime connection and re-establishes
// one carrying the new session's credentials. Reestablish returns without
// waiting for the new connection.
type Reconnector interface {
	Reestablish()
}
