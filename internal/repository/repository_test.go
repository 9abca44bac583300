package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/lms-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Assignment{},
		&models.Enrollment{},
		&models.Submission{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()

	user := models.User{Email: email, FullName: "Test User", PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uint, status models.CourseStatus, publishedAt *time.Time) models.Course {
	t.Helper()

	course := models.Course{
		InstructorID: instructorID,
		Title:        "Test Course",
		Description:  "A course used by the repository tests.",
		Status:       status,
		PublishedAt:  publishedAt,
	}
	require.NoError(t, db.Create(&course).Error)

	return course
}
