package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-auth-service/internal/auth"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashPassword_FromArgument(t *testing.T) {
	out, err := execute(t, "", "hash-password", "s3cret!", "--cost", "4")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, auth.ComparePassword(hash, "s3cret!"))
}

func TestHashPassword_FromStdin(t *testing.T) {
	out, err := execute(t, "from-stdin\n", "hash-password", "--cost", "4")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(strings.TrimSpace(out), "from-stdin"))
}

func TestHashPassword_EmptyStdin(t *testing.T) {
	_, err := execute(t, "", "hash-password")
	require.Error(t, err)
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	_, err := execute(t, "", "create-user", "alice", "alice@example.com", "wizard", "--password", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestCreateUser_RequiresDSN(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	t.Setenv("POSTGRES_DSN", "")

	_, err := execute(t, "", "create-user", "alice", "alice@example.com", "manager", "--password", "secret1")
	require.ErrorIs(t, err, errMissingDSN)
}

func TestMigrate_ValidatesCommand(t *testing.T) {
	_, err := execute(t, "", "migrate", "sideways")
	require.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	t.Setenv("POSTGRES_DSN", "")
	_, err = execute(t, "", "migrate", "status")
	require.ErrorIs(t, err, errMissingDSN)
}
