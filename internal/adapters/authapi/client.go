package authapi

// Package authapi implements the AuthAPI port against the identity service's
// JSON credential-exchange endpoint.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/opsgate/console/internal/domain/auth"
	apperrors "github.com/opsgate/console/internal/errors"
	"github.com/opsgate/console/internal/ports"
)

const (
	defaultLoginPath = "/api/admin/login"
	defaultTimeout   = 10 * time.Second

	// maxResponseBytes bounds how much of a response body is read. The login
	// payload is tiny; anything larger is not a login response.
	maxResponseBytes = 1 << 20
)

// Client is the password-mode AuthAPI implementation.
type Client struct {
	baseURL    string
	loginPath  string
	httpClient *http.Client
}

// ClientConfig holds configuration for the auth client.
type ClientConfig struct {
	BaseURL    string
	LoginPath  string        // default /api/admin/login
	Timeout    time.Duration // default 10s, ignored when HTTPClient is set
	HTTPClient *http.Client  // optional
}

// NewClient creates a new auth client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = defaultLoginPath
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		loginPath:  loginPath,
		httpClient: httpClient,
	}, nil
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	Data    *loginData `json:"data"`
	Error   string     `json:"error"`
}

type loginData struct {
	Token string            `json:"token"`
	User  *principalPayload `json:"user"`
	Admin *principalPayload `json:"admin"`
}

type principalPayload struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func (p *principalPayload) toPrincipal() *domainauth.Principal {
	return &domainauth.Principal{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Role:        domainauth.Role(strings.ToLower(strings.TrimSpace(p.Role))),
	}
}

// Login exchanges the identifier and secret for a token and principal.
// Failures map onto the sign-in error taxonomy: unreachable service or an
// uninterpretable response is a transport error, an explicit rejection
// carries the server-provided reason verbatim.
func (c *Client) Login(ctx context.Context, identifier, secret string) (ports.Grant, error) {
	body, err := json.Marshal(loginRequest{Identifier: identifier, Secret: secret})
	if err != nil {
		return ports.Grant{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.loginPath, bytes.NewReader(body))
	if err != nil {
		return ports.Grant{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Grant{}, apperrors.TransportWrap(err, "network error")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.Grant{}, apperrors.TransportWrap(err, "network error")
	}

	var payload loginResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ports.Grant{}, apperrors.TransportWrap(
			fmt.Errorf("decode login response (status %d): %w", resp.StatusCode, err),
			"malformed response")
	}

	if !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = "authentication rejected"
		}
		return ports.Grant{}, apperrors.CredentialRejected(msg)
	}

	return normalize(payload.Data)
}

// normalize collapses the response's alternate user/admin fields into one
// canonical principal, preferring admin when both are present. A success
// response without a token or without any principal record is a protocol
// violation.
func normalize(data *loginData) (ports.Grant, error) {
	if data == nil || data.Token == "" {
		return ports.Grant{}, apperrors.Transport("malformed response")
	}
	var principal *domainauth.Principal
	switch {
	case data.Admin != nil:
		principal = data.Admin.toPrincipal()
	case data.User != nil:
		principal = data.User.toPrincipal()
	default:
		return ports.Grant{}, apperrors.Transport("malformed response")
	}
	return ports.Grant{Token: data.Token, Principal: principal}, nil
}

var _ ports.AuthAPI = (*Client)(nil)
