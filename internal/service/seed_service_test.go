package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lms-go-api/internal/models"
)

func TestSeedServiceEnsureDefaultUsers(t *testing.T) {
	users := newMemoryUserRepo()
	svc := NewSeedService(users, "letmein-please", testLogger())
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultUsers(ctx))

	total, err := users.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	admin, err := users.GetByEmail(ctx, "admin@lms.local")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("letmein-please")))

	instructor, err := users.GetByEmail(ctx, "instructor@lms.local")
	require.NoError(t, err)
	require.Equal(t, models.RoleInstructor, instructor.Role)

	student, err := users.GetByEmail(ctx, "student@lms.local")
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, student.Role)
	require.Equal(t, "S-001", student.StudentNumber)
}

func TestSeedServiceSkipsNonEmptyTable(t *testing.T) {
	users := newMemoryUserRepo()
	ctx := context.Background()

	existing := models.User{Email: "keeper@lms.local", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, &existing))

	svc := NewSeedService(users, "letmein-please", testLogger())
	require.NoError(t, svc.EnsureDefaultUsers(ctx))

	total, err := users.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
