package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_ContainsExpectedCommands(t *testing.T) {
	cmds := commands()

	for _, name := range []string{"login", "logout", "whoami", "watch"} {
		cmd, ok := cmds[name]
		require.True(t, ok, "missing command %q", name)
		assert.Equal(t, name, cmd.name)
		assert.NotEmpty(t, cmd.description)
		assert.NotNil(t, cmd.run)
	}
}

func TestParseLoginFlags_Defaults(t *testing.T) {
	opts, err := parseLoginFlags([]string{"-email", "admin@example.com", "-password", "secret-1"})
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", opts.Email)
	assert.Equal(t, "secret-1", opts.Password)
	assert.Equal(t, 2*time.Second, opts.Wait)
	assert.Equal(t, 30*time.Second, opts.Timeout)
}

func TestParseLoginFlags_TrimsEmail(t *testing.T) {
	opts, err := parseLoginFlags([]string{"-email", "  admin@example.com  "})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", opts.Email)
}

func TestParseLoginFlags_RejectsNonPositiveTimeout(t *testing.T) {
	_, err := parseLoginFlags([]string{"-email", "a@b.com", "-timeout", "0s"})
	require.Error(t, err)
}

func TestParseLoginFlags_UnknownFlag(t *testing.T) {
	_, err := parseLoginFlags([]string{"-bogus"})
	require.Error(t, err)
}
