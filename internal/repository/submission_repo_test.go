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

func createAssignment(t *testing.T, db *gorm.DB, courseID uint) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		CourseID:     courseID,
		Title:        "Test Assignment",
		Instructions: "Instructions for the repository tests.",
		MaxPoints:    100,
	}
	require.NoError(t, db.Create(&assignment).Error)

	return assignment
}

func TestSubmissionRepositoryGetByAssignmentAndStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()
	course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)
	assignment := createAssignment(t, db, course.ID)

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		ArtifactURL:  "https://files.example.com/work.pdf",
		Status:       models.SubmissionStatusSubmitted,
		Version:      1,
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &submission))

	found, err := repo.GetByAssignmentAndStudent(ctx, assignment.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, submission.ID, found.ID)

	_, err = repo.GetByAssignmentAndStudent(ctx, assignment.ID, 999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSubmissionRepositoryListByCourse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()

	course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)
	otherCourse := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)

	first := createAssignment(t, db, course.ID)
	second := createAssignment(t, db, course.ID)
	foreign := createAssignment(t, db, otherCourse.ID)

	for i, assignment := range []models.Assignment{first, second, foreign} {
		submission := models.Submission{
			AssignmentID: assignment.ID,
			StudentID:    student.ID,
			ArtifactURL:  "https://files.example.com/work.pdf",
			Status:       models.SubmissionStatusSubmitted,
			Version:      1,
			SubmittedAt:  time.Now().Add(time.Duration(-i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, &submission))
	}

	// Only submissions whose assignment belongs to the course are returned.
	submissions, total, err := repo.ListByCourse(ctx, course.ID, SubmissionFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, submissions, 2)
	for _, submission := range submissions {
		require.NotEqual(t, foreign.ID, submission.AssignmentID)
	}
}

func TestSubmissionRepositoryListByStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	other := createUser(t, db, "other@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()
	course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)
	assignment := createAssignment(t, db, course.ID)

	for _, owner := range []models.User{student, other} {
		submission := models.Submission{
			AssignmentID: assignment.ID,
			StudentID:    owner.ID,
			ArtifactURL:  "https://files.example.com/work.pdf",
			Status:       models.SubmissionStatusSubmitted,
			Version:      1,
			SubmittedAt:  time.Now(),
		}
		require.NoError(t, repo.Create(ctx, &submission))
	}

	submissions, total, err := repo.ListByStudent(ctx, student.ID, SubmissionFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, submissions, 1)
	require.Equal(t, student.ID, submissions[0].StudentID)
}

func TestSubmissionRepositoryUpdateVersioning(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	instructor := createUser(t, db, "instructor@lms.local", models.RoleInstructor)
	student := createUser(t, db, "student@lms.local", models.RoleStudent)
	publishedAt := time.Now().UTC()
	course := createCourse(t, db, instructor.ID, models.CourseStatusPublished, &publishedAt)
	assignment := createAssignment(t, db, course.ID)

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		ArtifactURL:  "https://files.example.com/v1.pdf",
		Status:       models.SubmissionStatusGraded,
		Version:      1,
		SubmittedAt:  time.Now().Add(-time.Hour),
	}
	score := 55
	submission.Score = &score
	require.NoError(t, repo.Create(ctx, &submission))

	submission.BeginAttempt("https://files.example.com/v2.pdf", time.Now())
	require.NoError(t, repo.Update(ctx, &submission))

	got, err := repo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Version)
	require.Equal(t, models.SubmissionStatusSubmitted, got.Status)
	require.Nil(t, got.Score)
	require.Equal(t, "https://files.example.com/v2.pdf", got.ArtifactURL)
}
