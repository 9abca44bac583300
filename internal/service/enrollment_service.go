package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lms-go-api/internal/authz"
	"github.com/noah-isme/lms-go-api/internal/dto"
	"github.com/noah-isme/lms-go-api/internal/models"
	"github.com/noah-isme/lms-go-api/internal/repository"
)

// EnrollmentService orchestrates the enrollment state machine.
type EnrollmentService interface {
	Enroll(ctx context.Context, caller authz.Caller, courseID uint) (dto.EnrollmentResponse, error)
	MyEnrollments(ctx context.Context, caller authz.Caller, filter repository.EnrollmentFilter) (dto.EnrollmentListResponse, error)
	Cancel(ctx context.Context, caller authz.Caller, enrollmentID uint) (dto.EnrollmentResponse, error)
	Complete(ctx context.Context, caller authz.Caller, enrollmentID uint) (dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
		now:         time.Now,
	}
}

// Enroll creates an active enrollment in a published course. A second active
// enrollment for the same (student, course) pair is a conflict; the storage
// layer is trusted to serialize concurrent attempts.
func (s *enrollmentService) Enroll(ctx context.Context, caller authz.Caller, courseID uint) (dto.EnrollmentResponse, error) {
	if decision := authz.Decide(caller, authz.ActionEnroll, authz.Resource{}); !decision.Allowed() {
		return dto.EnrollmentResponse{}, denialError(decision, "course")
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, NewNotFound("course")
		}
		return dto.EnrollmentResponse{}, err
	}

	// Unpublished courses are invisible to students, so a draft behaves like a
	// missing course here.
	if !course.IsPublished() {
		return dto.EnrollmentResponse{}, NewNotFound("course")
	}

	if _, err := s.enrollments.FindActive(ctx, caller.UserID, courseID); err == nil {
		return dto.EnrollmentResponse{}, NewConflict("already enrolled in this course")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.Enrollment{
		StudentID:  caller.UserID,
		CourseID:   courseID,
		Status:     models.EnrollmentStatusActive,
		EnrolledAt: s.now(),
	}

	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Uint("enrollment_id", enrollment.ID).Uint("course_id", courseID).Msg("student enrolled")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) MyEnrollments(ctx context.Context, caller authz.Caller, filter repository.EnrollmentFilter) (dto.EnrollmentListResponse, error) {
	if !caller.Authenticated {
		return dto.EnrollmentListResponse{}, NewUnauthenticated()
	}
	if caller.Role != models.RoleStudent {
		return dto.EnrollmentListResponse{}, NewForbidden("only students have enrollments")
	}

	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	enrollments, total, err := s.enrollments.ListByStudent(ctx, caller.UserID, filter)
	if err != nil {
		return dto.EnrollmentListResponse{}, err
	}

	return dto.EnrollmentListResponse{
		Enrollments: dto.NewEnrollmentResponseSlice(enrollments),
		Total:       total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}, nil
}

// Cancel transitions the caller's own active enrollment to cancelled.
func (s *enrollmentService) Cancel(ctx context.Context, caller authz.Caller, enrollmentID uint) (dto.EnrollmentResponse, error) {
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	facts := authz.Resource{OwnerID: enrollment.StudentID}
	if decision := authz.Decide(caller, authz.ActionEnrollmentCancel, facts); !decision.Allowed() {
		return dto.EnrollmentResponse{}, denialError(decision, "enrollment")
	}

	if !enrollment.IsActive() {
		return dto.EnrollmentResponse{}, NewInvalidState("only an active enrollment can be cancelled")
	}

	enrollment.Status = models.EnrollmentStatusCancelled
	if err := s.enrollments.Update(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Uint("enrollment_id", enrollment.ID).Msg("enrollment cancelled")

	return dto.NewEnrollmentResponse(enrollment), nil
}

// Complete transitions an active enrollment to completed. Only staff of the
// enrollment's course may do this; cancelled enrollments stay cancelled.
func (s *enrollmentService) Complete(ctx context.Context, caller authz.Caller, enrollmentID uint) (dto.EnrollmentResponse, error) {
	enrollment, err := s.getEnrollment(ctx, enrollmentID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	facts := authz.Resource{
		CoursePublished: course.IsPublished(),
		CourseOwnerID:   course.InstructorID,
		OwnerID:         enrollment.StudentID,
	}
	if decision := authz.Decide(caller, authz.ActionEnrollmentComplete, facts); !decision.Allowed() {
		return dto.EnrollmentResponse{}, denialError(decision, "enrollment")
	}

	if !enrollment.IsActive() {
		return dto.EnrollmentResponse{}, NewInvalidState("only an active enrollment can be completed")
	}

	enrollment.Status = models.EnrollmentStatusCompleted
	if err := s.enrollments.Update(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Uint("enrollment_id", enrollment.ID).Msg("enrollment completed")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) getEnrollment(ctx context.Context, id uint) (models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Enrollment{}, NewNotFound("enrollment")
		}
		return models.Enrollment{}, err
	}

	return enrollment, nil
}
