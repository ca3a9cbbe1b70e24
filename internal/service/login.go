package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
	"github.com/opsgate/console/internal/observability/metrics"
	"github.com/opsgate/console/internal/ports"
)

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	API      ports.AuthAPI
	Gate     ports.RoleGate
	Sessions ports.SessionStore
	Bus      ports.EventBus
	Realtime ports.Reconnector
	Logger   *slog.Logger
	Now      func() time.Time // optional, for tests
}

// LoginService orchestrates the admin sign-in flow: validate, authenticate,
// role-gate, persist, notify, reconnect realtime. One attempt runs at a
// time; a submit while another is in flight is rejected, not queued.
type LoginService struct {
	api      ports.AuthAPI
	gate     ports.RoleGate
	sessions ports.SessionStore
	bus      ports.EventBus
	realtime ports.Reconnector
	logger   *slog.Logger
	now      func() time.Time

	submitting atomic.Bool
}

// NewLoginService constructs a new LoginService.
func NewLoginService(opts LoginServiceOptions) *LoginService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LoginService{
		api:      opts.API,
		gate:     opts.Gate,
		sessions: opts.Sessions,
		bus:      opts.Bus,
		realtime: opts.Realtime,
		logger:   logger,
		now:      now,
	}
}

// Submit runs one sign-in attempt end to end. On admission the side effects
// are strictly ordered: the session is persisted, then the login event is
// published, then the realtime reconnect is started (unawaited), then
// onSuccess fires exactly once. Credentials are not retained past the
// exchange. Any failure is returned as a single normalized error; completed
// steps are not rolled back.
func (s *LoginService) Submit(ctx context.Context, creds domainauth.Credentials, onSuccess func()) error {
	if !s.submitting.CompareAndSwap(false, true) {
		return apperrors.Conflict("a sign-in attempt is already in progress")
	}
	defer s.submitting.Store(false)

	if err := creds.Validate(); err != nil {
		return s.fail(ctx, err)
	}

	grant, err := s.api.Login(ctx, creds.Identifier, creds.Secret)
	if err != nil {
		return s.fail(ctx, err)
	}

	// The exchanged token is deliberately dropped on denial: admission
	// failure must not leave a live but unauthorized session behind.
	if err := s.gate.Admit(grant.Principal); err != nil {
		return s.fail(ctx, err)
	}

	sess := domainauth.Session{
		Token:     grant.Token,
		Principal: *grant.Principal,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		metrics.SessionPersistFailuresTotal.Inc()
		return s.fail(ctx, apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist admin session"))
	}

	s.bus.Publish(domainauth.ChannelAdminLoginSuccess, domainauth.SessionEvent{
		ID:         uuid.NewString(),
		Principal:  sess.Principal,
		Token:      sess.Token,
		OccurredAt: s.now(),
	})

	s.realtime.Reestablish()

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.InfoContext(ctx, "admin session established",
		"principal_id", sess.Principal.ID,
		"role", sess.Principal.Role)

	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// fail records the failure outcome and returns the error unchanged. The
// message is safe to log; credentials never appear in errors.
func (s *LoginService) fail(ctx context.Context, err error) error {
	outcome := string(apperrors.GetCode(err))
	if outcome == "" {
		outcome = string(apperrors.ErrCodeInternal)
	}
	metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
	s.logger.WarnContext(ctx, "admin sign-in failed", "outcome", outcome, "error", err)
	return err
}
