package authroles

import (
	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
)

// AdminGate admits only principals carrying the admin role. The identity
// service is assumed to enforce the same policy server-side; this gate keeps
// a non-admin principal from ever reaching the session store if it does not.
type AdminGate struct{}

// Admit returns nil for an admin principal and an AuthorizationDenied error
// otherwise. A missing principal record is its own denial reason so the
// operator sees an accurate message.
func (AdminGate) Admit(p *domainauth.Principal) error {
	if p == nil {
		return apperrors.AuthorizationDenied("missing principal")
	}
	if !p.IsAdmin() {
		return apperrors.AuthorizationDenied("access denied")
	}
	return nil
}
