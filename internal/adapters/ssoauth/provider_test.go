package ssoauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
)

// fakeIdP serves OIDC discovery, token, and userinfo endpoints.
type fakeIdP struct {
	srv *httptest.Server

	rejectGrant bool
	claims      map[string]any
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()
	idp := &fakeIdP{
		claims: map[string]any{
			"sub":   "1",
			"name":  "Ada",
			"email": "a@b.com",
			"role":  "admin",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 idp.srv.URL,
			"authorization_endpoint": idp.srv.URL + "/auth",
			"token_endpoint":         idp.srv.URL + "/token",
			"userinfo_endpoint":      idp.srv.URL + "/userinfo",
			"jwks_uri":               idp.srv.URL + "/keys",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.Form.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		if idp.rejectGrant {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_grant",
				"error_description": "invalid credentials",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "sso-tok-1",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sso-tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(idp.claims)
	})

	idp.srv = httptest.NewServer(mux)
	t.Cleanup(idp.srv.Close)
	return idp
}

func newTestProvider(t *testing.T, idp *fakeIdP) *Provider {
	t.Helper()
	provider, err := NewProvider(ProviderConfig{
		ClientID:     "console",
		ClientSecret: "client-secret",
		Scope:        "openid profile email",
		DiscoveryURL: idp.srv.URL + "/.well-known/openid-configuration",
	})
	require.NoError(t, err)
	return provider
}

func TestNewProvider_RequiresConfig(t *testing.T) {
	_, err := NewProvider(ProviderConfig{ClientSecret: "s", DiscoveryURL: "https://idp"})
	assert.Error(t, err)

	_, err = NewProvider(ProviderConfig{ClientID: "c", DiscoveryURL: "https://idp"})
	assert.Error(t, err)

	_, err = NewProvider(ProviderConfig{ClientID: "c", ClientSecret: "s"})
	assert.Error(t, err)
}

func TestProvider_Login_Success(t *testing.T) {
	idp := newFakeIdP(t)
	provider := newTestProvider(t, idp)

	grant, err := provider.Login(context.Background(), "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "sso-tok-1", grant.Token)
	require.NotNil(t, grant.Principal)
	assert.Equal(t, int64(1), grant.Principal.ID)
	assert.Equal(t, "Ada", grant.Principal.DisplayName)
	assert.Equal(t, domainauth.RoleAdmin, grant.Principal.Role)
}

func TestProvider_Login_Rejection(t *testing.T) {
	idp := newFakeIdP(t)
	idp.rejectGrant = true
	provider := newTestProvider(t, idp)

	_, err := provider.Login(context.Background(), "a@b.com", "wrong-pass")
	require.Error(t, err)
	assert.True(t, apperrors.IsCredentialRejected(err))
	assert.Equal(t, "invalid credentials", apperrors.UserMessage(err))
}

func TestProvider_Login_MissingRoleClaim(t *testing.T) {
	idp := newFakeIdP(t)
	delete(idp.claims, "role")
	provider := newTestProvider(t, idp)

	_, err := provider.Login(context.Background(), "a@b.com", "correct-horse")
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.Equal(t, "malformed response", apperrors.UserMessage(err))
}

func TestProvider_Login_UIDClaimOverridesSubject(t *testing.T) {
	idp := newFakeIdP(t)
	idp.claims["sub"] = "not-numeric"
	idp.claims["uid"] = float64(42)
	provider := newTestProvider(t, idp)

	grant, err := provider.Login(context.Background(), "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(42), grant.Principal.ID)
}

func TestPrincipalFromClaims_RoleNormalized(t *testing.T) {
	p, err := principalFromClaims("7", map[string]any{"role": " ADMIN "}, "role")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, p.Role)
	assert.Equal(t, int64(7), p.ID)
}

func TestNumericClaim(t *testing.T) {
	id, ok := numericClaim(float64(5))
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	id, ok = numericClaim("12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = numericClaim("abc")
	assert.False(t, ok)

	_, ok = numericClaim(nil)
	assert.False(t, ok)
}
