package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
)

func TestUserRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{Username: "admin", Email: "admin@sarb.ai", PasswordHash: "hash", IsStaff: true, IsActive: true}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	dup := &entities.User{Username: "admin", PasswordHash: "x"}
	assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, got.IsStaff)
	assert.False(t, got.LastLogin.Valid)

	got.PasswordHash = "new-hash"
	got.IsActive = false
	require.NoError(t, repo.Update(ctx, got))

	require.NoError(t, repo.TouchLastLogin(ctx, u.ID, time.Now()))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.False(t, got.IsActive)
	assert.True(t, got.LastLogin.Valid)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entities.User{ID: 99}), domainerrors.ErrNotFound)
}
