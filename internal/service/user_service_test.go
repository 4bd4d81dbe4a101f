package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/events"
	apperrors "github.com/spec-kit/user-auth-service/pkg/util/errorutil"
)

func TestUserService_ListAndFilter(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "alice", "secret1", domain.RoleManager)
	f.seed(t, "bob", "secret1", domain.RoleGuest)

	all, err := f.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	guests, err := f.users.ListByRole(context.Background(), "guest")
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "bob", guests[0].Username)

	_, err = f.users.ListByRole(context.Background(), "wizard")
	requireCode(t, err, apperrors.CodeValidationFailed)
}

func TestUserService_Get(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice", "secret1", domain.RoleManager)

	got, err := f.users.Get(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = f.users.Get(context.Background(), "missing")
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice", "secret1", domain.RoleManager)
	f.seed(t, "bob", "secret1", domain.RoleGuest)
	inactive := false

	updated, err := f.users.Update(context.Background(), alice.ID, UpdateUserInput{
		Username: "alice",
		Email:    "alice@hotel.example",
		Password: "newsecret",
		Role:     domain.RoleFrontOfficeManager,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleFrontOfficeManager, updated.Role)
	assert.False(t, updated.IsActive)
	assert.NotEqual(t, alice.PasswordHash, updated.PasswordHash)

	_, err = f.users.Update(context.Background(), alice.ID, UpdateUserInput{
		Username: "bob",
		Email:    "alice@hotel.example",
		Role:     domain.RoleManager,
	})
	requireCode(t, err, apperrors.CodeConflict)

	_, err = f.users.Update(context.Background(), "missing", UpdateUserInput{
		Username: "ghost",
		Email:    "ghost@example.com",
		Role:     domain.RoleManager,
	})
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = f.users.Update(context.Background(), alice.ID, UpdateUserInput{Username: "al", Email: "x", Role: "nobody"})
	domainErr := requireCode(t, err, apperrors.CodeValidationFailed)
	assert.Len(t, domainErr.Details, 3)
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice", "secret1", domain.RoleManager)
	actor := &domain.Identity{SubjectID: "admin-1", Username: "admin", Role: domain.RoleGeneralManager}

	require.NoError(t, f.users.Delete(context.Background(), actor, alice.ID))
	assert.Contains(t, f.events.types(), events.EventUserDeleted)

	err := f.users.Delete(context.Background(), actor, alice.ID)
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestUserService_UpdateRejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice", "secret1", domain.RoleManager)

	_, err := f.users.Update(context.Background(), alice.ID, UpdateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("a", 80),
		Role:     domain.RoleManager,
	})
	domainErr := requireCode(t, err, apperrors.CodeValidationFailed)
	assert.Contains(t, domainErr.Details, "password")

	stored, err := f.users.Get(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.PasswordHash, stored.PasswordHash)
}
