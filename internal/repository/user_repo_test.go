package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/lms-go-api/internal/models"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, total)

	user := models.User{Email: "admin@lms.local", FullName: "Site Admin", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(ctx, &user))
	require.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "admin@lms.local")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, byID.Role)

	_, err = repo.GetByEmail(ctx, "missing@lms.local")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	total, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
