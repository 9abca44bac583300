package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/lms-go-api/internal/models"
)

func TestEnrollmentRepositoryFindActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()
	course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)

	cancelled := models.Enrollment{
		StudentID:  student.ID,
		CourseID:   course.ID,
		Status:     models.EnrollmentStatusCancelled,
		EnrolledAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, &cancelled))

	// Cancelled rows do not count as active.
	_, err := repo.FindActive(ctx, student.ID, course.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	active := models.Enrollment{
		StudentID:  student.ID,
		CourseID:   course.ID,
		Status:     models.EnrollmentStatusActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &active))

	found, err := repo.FindActive(ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, active.ID, found.ID)

	_, err = repo.FindActive(ctx, student.ID, 999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestEnrollmentRepositoryListByStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	other := createUser(t, db, "other@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()

	for i := 0; i < 3; i++ {
		course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)
		enrollment := models.Enrollment{
			StudentID:  student.ID,
			CourseID:   course.ID,
			Status:     models.EnrollmentStatusActive,
			EnrolledAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, &enrollment))
	}

	foreign := models.Enrollment{
		StudentID:  other.ID,
		CourseID:   1,
		Status:     models.EnrollmentStatusActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &foreign))

	enrollments, total, err := repo.ListByStudent(ctx, student.ID, EnrollmentFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, enrollments, 2)
	// Most recent enrollment first.
	require.True(t, enrollments[0].EnrolledAt.After(enrollments[1].EnrolledAt))
}

func TestEnrollmentRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()
	course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)

	enrollment := models.Enrollment{
		StudentID:  student.ID,
		CourseID:   course.ID,
		Status:     models.EnrollmentStatusActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &enrollment))

	enrollment.Status = models.EnrollmentStatusCompleted
	require.NoError(t, repo.Update(ctx, &enrollment))

	got, err := repo.GetByID(ctx, enrollment.ID)
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusCompleted, got.Status)
}
