package auth

import (
	"log/slog"
	"regexp"
	"unicode/utf8"

	apperrors "github.com/opsgate/console/internal/errors"
)

// MinSecretLength is the minimum accepted secret length.
const MinSecretLength = 6

// emailPattern accepts the well-formed e-mail shape local@domain.tld.
// Deliverability is the identity service's concern, not ours.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Credentials holds one submission's identifier and secret. Ephemeral: they
// exist only for the duration of a single sign-in attempt and must never be
// persisted or logged.
type Credentials struct {
	Identifier string
	Secret     string
}

// Validate performs the pure syntactic check that runs before every
// submission attempt. It reports the first failing field; a submission with
// an invalid result never reaches the network.
func (c Credentials) Validate() error {
	if !emailPattern.MatchString(c.Identifier) {
		return apperrors.ValidationField("identifier", "identifier must be a valid e-mail address")
	}
	if utf8.RuneCountInString(c.Secret) < MinSecretLength {
		return apperrors.ValidationField("secret", "secret must be at least 6 characters")
	}
	return nil
}

// LogValue redacts the secret from structured log output.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("identifier", c.Identifier),
		slog.String("secret", "[REDACTED]"),
	)
}
