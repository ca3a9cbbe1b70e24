package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
)

func TestAdminGate_AdmitsAdmin(t *testing.T) {
	gate := AdminGate{}
	err := gate.Admit(&domainauth.Principal{ID: 1, Role: domainauth.RoleAdmin})
	assert.NoError(t, err)
}

func TestAdminGate_DeniesStandardRole(t *testing.T) {
	gate := AdminGate{}

	err := gate.Admit(&domainauth.Principal{ID: 2, Role: domainauth.RoleStandard})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorizationDenied(err))
	assert.Equal(t, "access denied", apperrors.UserMessage(err))
}

func TestAdminGate_DeniesUnknownRole(t *testing.T) {
	gate := AdminGate{}

	err := gate.Admit(&domainauth.Principal{ID: 3, Role: domainauth.Role("superuser")})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorizationDenied(err))
}

func TestAdminGate_DeniesMissingPrincipal(t *testing.T) {
	gate := AdminGate{}

	err := gate.Admit(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorizationDenied(err))
}
