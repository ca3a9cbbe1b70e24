package auth

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/opsgate/console/internal/errors"
)

func TestCredentials_Validate_Valid(t *testing.T) {
	creds := Credentials{Identifier: "admin@example.com", Secret: "s3cret-enough"}
	require.NoError(t, creds.Validate())
}

func TestCredentials_Validate_ShortSecret(t *testing.T) {
	creds := Credentials{Identifier: "a@b.com", Secret: "short"}

	err := creds.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "secret", apperrors.GetField(err))
}

func TestCredentials_Validate_IdentifierCheckedFirst(t *testing.T) {
	// Both fields invalid: the identifier failure wins.
	creds := Credentials{Identifier: "not-an-email", Secret: "short"}

	err := creds.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "identifier", apperrors.GetField(err))
}

func TestCredentials_Validate_IdentifierShapes(t *testing.T) {
	tests := []struct {
		identifier string
		valid      bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.org", true},
		{"user+tag@example.io", true},
		{"", false},
		{"plain", false},
		{"missing-at.example.com", false},
		{"no-tld@example", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			creds := Credentials{Identifier: tt.identifier, Secret: "long-enough"}
			err := creds.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, "identifier", apperrors.GetField(err))
			}
		})
	}
}

func TestCredentials_Validate_SecretBoundary(t *testing.T) {
	base := Credentials{Identifier: "a@b.com"}

	base.Secret = "12345"
	assert.Error(t, base.Validate())

	base.Secret = "123456"
	assert.NoError(t, base.Validate())

	// Length counts runes, not bytes.
	base.Secret = "säcrét"
	assert.NoError(t, base.Validate())
}

func TestCredentials_LogValue_RedactsSecret(t *testing.T) {
	creds := Credentials{Identifier: "a@b.com", Secret: "hunter2!"}

	val := creds.LogValue()
	require.Equal(t, slog.KindGroup, val.Kind())

	var redacted bool
	for _, attr := range val.Group() {
		assert.NotEqual(t, "hunter2!", attr.Value.String())
		if attr.Key == "secret" {
			redacted = attr.Value.String() == "[REDACTED]"
		}
	}
	assert.True(t, redacted)
}
