package sessionredis

// Package sessionredis provides a Redis-backed admin session store for
// installations that share client state across hosts.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	"github.com/opsgate/console/internal/ports"
)

// DefaultKey is the fixed, well-known key for the admin session. It is
// scoped to "admin session" and distinct from any non-admin session keys.
const DefaultKey = "console:admin_session"

// Store is a Redis-based session store.
type Store struct {
	client redis.UniversalClient
	key    string
}

// NewStore creates a Redis session store under the default admin key.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client, key: DefaultKey}
}

// NewStoreWithKey creates a Redis session store under a custom key.
func NewStoreWithKey(client redis.UniversalClient, key string) *Store {
	return &Store{client: client, key: key}
}

// Save writes the session, fully replacing any prior record under the key.
func (s *Store) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Current reads the persisted session, or ports.ErrNoSession when none exists.
func (s *Store) Current(ctx context.Context) (domainauth.Session, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrNoSession
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

// Clear removes the persisted session. Clearing an absent session is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

var _ ports.SessionStore = (*Store)(nil)
