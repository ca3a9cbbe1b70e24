package auth

// Package auth contains simple hand-written test doubles for sign-in ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	"github.com/opsgate/console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI      = (*MockAuthAPI)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.Reconnector  = (*FakeReconnector)(nil)
	_ ports.RealtimeLink = (*FakeRealtimeLink)(nil)
)

// MockAuthAPI simulates the identity service for tests.
type MockAuthAPI struct {
	LoginFunc func(ctx context.Context, identifier, secret string) (ports.Grant, error)

	// DefaultGrant is returned when LoginFunc is nil.
	DefaultGrant ports.Grant

	mu    sync.Mutex
	calls int
}

// NewMockAuthAPI creates a MockAuthAPI that grants an admin principal.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{
		DefaultGrant: ports.Grant{
			Token: "mock-token-1",
			Principal: &domainauth.Principal{
				ID:          1,
				DisplayName: "Mock Admin",
				Email:       "mock.admin@example.com",
				Role:        domainauth.RoleAdmin,
			},
		},
	}
}

func (m *MockAuthAPI) Login(ctx context.Context, identifier, secret string) (ports.Grant, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, secret)
	}
	return m.DefaultGrant, nil
}

// Calls reports how many times Login was invoked.
func (m *MockAuthAPI) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MemorySessionStore holds the single admin session in memory for unit
// tests. Save is last-write-wins like the real stores.
type MemorySessionStore struct {
	mu      sync.Mutex
	sess    domainauth.Session
	present bool

	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	m.present = true
	return nil
}

func (m *MemorySessionStore) Current(_ context.Context) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return domainauth.Session{}, ports.ErrNoSession
	}
	return m.sess, nil
}

func (m *MemorySessionStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = domainauth.Session{}
	m.present = false
	return nil
}

// FakeReconnector records Reestablish calls.
type FakeReconnector struct {
	mu    sync.Mutex
	calls int
}

func (f *FakeReconnector) Reestablish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

// Calls reports how many times Reestablish was invoked.
func (f *FakeReconnector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeRealtimeLink is a scriptable RealtimeLink recording the order of
// connect and disconnect calls.
type FakeRealtimeLink struct {
	// ConnectErr, when set, is returned by Connect.
	ConnectErr error

	mu        sync.Mutex
	connected bool
	ops       []string
}

// NewFakeRealtimeLink creates a link in the given connection state.
func NewFakeRealtimeLink(connected bool) *FakeRealtimeLink {
	return &FakeRealtimeLink{connected: connected}
}

func (f *FakeRealtimeLink) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *FakeRealtimeLink) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	f.ops = append(f.ops, "disconnect")
}

func (f *FakeRealtimeLink) Connect(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "connect")
	if f.ConnectErr != nil {
		return f.ConnectErr
	}
	f.connected = true
	return nil
}

// Ops returns the recorded operation order.
func (f *FakeRealtimeLink) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.ops))
	copy(out, f.ops)
	return out
}
