package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL", "")
	t.Setenv("AUTH_USER_ADMIN_ROLES", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, []string{"general_manager", "front_office_manager"}, cfg.Auth.UserAdminRoles)
	assert.Equal(t, "receptionist", cfg.Auth.DefaultRole)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("AUTH_USER_ADMIN_ROLES", " manager, ,general_manager ")
	t.Setenv("APP_ENV", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"manager", "general_manager"}, cfg.Auth.UserAdminRoles)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL", "a week")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_REFRESH_TOKEN_TTL")
}
