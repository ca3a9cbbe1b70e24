package ssoauth

// Package ssoauth implements the AuthAPI port against an OIDC identity
// provider using the OAuth2 resource-owner password grant. It produces the
// same canonical principal as the password-mode client so the rest of the
// sign-in flow is provider-agnostic.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
	"github.com/opsgate/console/internal/ports"
)

const defaultRoleClaim = "role"

// Provider implements the AuthAPI interface using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	roleClaim  string
	httpClient *http.Client

	oidcProvider *gooidc.Provider
}

// ProviderConfig holds configuration for the SSO provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	RoleClaim    string       // userinfo claim carrying the role, default "role"
	HTTPClient   *http.Client // optional
}

// NewProvider creates a new SSO provider. Discovery runs once at
// construction time.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	roleClaim := cfg.RoleClaim
	if roleClaim == "" {
		roleClaim = defaultRoleClaim
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     op.Endpoint(),
		},
		roleClaim:    roleClaim,
		httpClient:   httpClient,
		oidcProvider: op,
	}, nil
}

// Login exchanges the identifier and secret via the password grant, then
// resolves the principal from the userinfo endpoint.
func (p *Provider) Login(ctx context.Context, identifier, secret string) (ports.Grant, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.PasswordCredentialsToken(ctx, identifier, secret)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			msg := retrieveErr.ErrorDescription
			if msg == "" {
				msg = "invalid credentials"
			}
			return ports.Grant{}, apperrors.CredentialRejected(msg)
		}
		return ports.Grant{}, apperrors.TransportWrap(err, "network error")
	}

	ui, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return ports.Grant{}, apperrors.TransportWrap(err, "network error")
	}

	var claims map[string]any
	if err := ui.Claims(&claims); err != nil {
		return ports.Grant{}, apperrors.TransportWrap(err, "malformed response")
	}

	principal, err := principalFromClaims(ui.Subject, claims, p.roleClaim)
	if err != nil {
		return ports.Grant{}, apperrors.TransportWrap(err, "malformed response")
	}

	return ports.Grant{Token: token.AccessToken, Principal: principal}, nil
}

// principalFromClaims maps userinfo claims onto the canonical principal.
// The numeric id comes from a "uid" claim when present, else from a numeric
// subject.
func principalFromClaims(subject string, claims map[string]any, roleClaim string) (*domainauth.Principal, error) {
	id, ok := numericClaim(claims["uid"])
	if !ok {
		parsed, err := strconv.ParseInt(subject, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("no numeric principal id in claims (sub=%q)", subject)
		}
		id = parsed
	}

	role, _ := claims[roleClaim].(string)
	if role == "" {
		return nil, fmt.Errorf("missing %q claim", roleClaim)
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &domainauth.Principal{
		ID:          id,
		DisplayName: name,
		Email:       email,
		Role:        domainauth.Role(strings.ToLower(strings.TrimSpace(role))),
	}, nil
}

// numericClaim extracts an int64 from a claim value, which JSON decoding
// surfaces as float64 or string depending on the provider.
func numericClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

var _ ports.AuthAPI = (*Provider)(nil)
