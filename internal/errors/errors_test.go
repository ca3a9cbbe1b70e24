package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := Transport("malformed response")
	assert.Equal(t, "malformed response", err.Error())

	wrapped := TransportWrap(stderrors.New("connection refused"), "network error")
	assert.Equal(t, "network error: connection refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "persist admin session")

	require.NotNil(t, err)
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", Validation("bad input"), IsValidation},
		{"conflict", Conflict("already in progress"), IsConflict},
		{"transport", Transport("network error"), IsTransport},
		{"credential rejected", CredentialRejected("invalid credentials"), IsCredentialRejected},
		{"authorization denied", AuthorizationDenied("access denied"), IsAuthorizationDenied},
		{"internal", Internal("oops"), IsInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(stderrors.New("plain")))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := CredentialRejected("invalid credentials")
	outer := fmt.Errorf("submit: %w", inner)

	assert.True(t, IsCredentialRejected(outer))
	assert.Equal(t, ErrCodeCredentialRejected, GetCode(outer))
}

func TestGetField(t *testing.T) {
	err := ValidationField("secret", "secret must be at least 6 characters")
	assert.Equal(t, "secret", GetField(err))
	assert.Equal(t, "", GetField(stderrors.New("plain")))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"rejection passes through verbatim", CredentialRejected("invalid credentials"), "invalid credentials"},
		{"transport passes through", Transport("network error"), "network error"},
		{"internal is masked", Internal("disk write failed on /var/lib"), "internal error"},
		{"internal wrap is masked", Wrap(stderrors.New("EACCES"), ErrCodeInternal, "persist admin session"), "internal error"},
		{"plain error is generic", stderrors.New("some library detail"), "sign-in failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserMessage_NeverIncludesCause(t *testing.T) {
	err := TransportWrap(stderrors.New("dial tcp 10.0.0.1:443: i/o timeout"), "network error")
	assert.Equal(t, "network error", UserMessage(err))
	assert.NotContains(t, UserMessage(err), "10.0.0.1")
}
