package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the client.
type AuthMode string

const (
	// AuthModePassword exchanges identifier+secret at the identity service's
	// JSON login endpoint.
	AuthModePassword AuthMode = "password"
	// AuthModeSSO exchanges identifier+secret against an OIDC provider via
	// the OAuth2 password grant.
	AuthModeSSO AuthMode = "sso"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "sso":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, sso)", v)
	}
}

// APIAuthConfig configures the password-mode identity service endpoint.
type APIAuthConfig struct {
	BaseURL   string        `env:"BASE_URL"   envDefault:"http://localhost:8080"`
	LoginPath string        `env:"LOGIN_PATH" envDefault:"/api/admin/login"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"10s"`
}

// SSOConfig configures the sso-mode OIDC provider.
type SSOConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	Scope        string `env:"SCOPE"      envDefault:"openid profile email"`
	RoleClaim    string `env:"ROLE_CLAIM" envDefault:"role"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which credential exchange to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// API configuration (used when Mode=password).
	API APIAuthConfig `envPrefix:"API_"`

	// SSO configuration (used when Mode=sso).
	SSO SSOConfig `envPrefix:"SSO_"`
}
