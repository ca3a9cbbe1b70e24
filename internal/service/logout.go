package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	"github.com/opsgate/console/internal/ports"
)

// Current returns the persisted admin session, or ports.ErrNoSession when
// none exists.
func (s *LoginService) Current(ctx context.Context) (domainauth.Session, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoSession) {
			return domainauth.Session{}, ports.ErrNoSession
		}
		return domainauth.Session{}, fmt.Errorf("read admin session: %w", err)
	}
	return sess, nil
}

// Logout clears the persisted session and publishes the logout event,
// mirroring the login path's store-then-publish order. Logging out with no
// session is a no-op.
func (s *LoginService) Logout(ctx context.Context) error {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoSession) {
			return nil
		}
		return fmt.Errorf("read admin session: %w", err)
	}

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear admin session: %w", err)
	}

	s.bus.Publish(domainauth.ChannelAdminLogout, domainauth.SessionEvent{
		ID:         uuid.NewString(),
		Principal:  sess.Principal,
		Token:      sess.Token,
		OccurredAt: s.now(),
	})

	s.logger.InfoContext(ctx, "admin session cleared", "principal_id", sess.Principal.ID)
	return nil
}
