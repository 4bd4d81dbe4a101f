package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-auth-service/internal/domain"
)

func TestMemoryUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	alice := &domain.User{ID: "1", Username: "alice", Email: "alice@example.com", Role: domain.RoleManager, IsActive: true}
	require.NoError(t, repo.Create(ctx, alice))
	assert.False(t, alice.CreatedAt.IsZero())

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	got.Role = domain.RoleGeneralManager
	require.NoError(t, repo.Update(ctx, got))

	byID, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGeneralManager, byID.Role)

	require.NoError(t, repo.Delete(ctx, "1"))
	_, err = repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "1"), ErrNotFound)
}

func TestMemoryUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "1", Username: "alice", Email: "alice@example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "2", Username: "alice", Email: "other@example.com"}), ErrConflict)
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: "3", Username: "bob", Email: "ALICE@example.com"}), ErrConflict)
}

func TestMemoryUserRepository_ListByRole(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "1", Username: "a", Email: "a@x.io", Role: domain.RoleGuest}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "2", Username: "b", Email: "b@x.io", Role: domain.RoleManager}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "3", Username: "c", Email: "c@x.io", Role: domain.RoleGuest}))

	guests, err := repo.ListByRole(ctx, domain.RoleGuest)
	require.NoError(t, err)
	require.Len(t, guests, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
