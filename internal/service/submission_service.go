package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lms-go-api/internal/authz"
	"github.com/noah-isme/lms-go-api/internal/dto"
	"github.com/noah-isme/lms-go-api/internal/models"
	"github.com/noah-isme/lms-go-api/internal/repository"
)

// SubmissionService orchestrates the submission state machine: hand-in,
// re-submission versioning, grading and resubmission requests.
type SubmissionService interface {
	Submit(ctx context.Context, caller authz.Caller, assignmentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	MySubmissions(ctx context.Context, caller authz.Caller, filter repository.SubmissionFilter) (dto.SubmissionListResponse, error)
	ListByCourse(ctx context.Context, caller authz.Caller, courseID uint, filter repository.SubmissionFilter) (dto.SubmissionListResponse, error)
	Grade(ctx context.Context, caller authz.Caller, submissionID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error)
	RequestResubmission(ctx context.Context, caller authz.Caller, submissionID uint, payload dto.ResubmissionRequest) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, enrollments repository.EnrollmentRepository, courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		enrollments: enrollments,
		courses:     courses,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// Submit hands in work for an assignment. A first submission creates version 1;
// submitting again overwrites the existing row as a new attempt, which clears
// any prior score and feedback and increments the version.
func (s *submissionService) Submit(ctx context.Context, caller authz.Caller, assignmentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, course, err := s.getAssignmentWithCourse(ctx, assignmentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	// Assignments of hidden courses must stay hidden, so the read policy runs
	// before any enrollment fact is revealed.
	if decision := authz.Decide(caller, authz.ActionCourseRead, courseFacts(course)); !decision.Allowed() {
		return dto.SubmissionResponse{}, denialError(decision, "assignment")
	}

	facts := courseFacts(course)
	if caller.Authenticated {
		if _, err := s.enrollments.FindActive(ctx, caller.UserID, course.ID); err == nil {
			facts.ActiveEnrollment = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, err
		}
	}

	if decision := authz.Decide(caller, authz.ActionSubmissionCreate, facts); !decision.Allowed() {
		return dto.SubmissionResponse{}, denialError(decision, "assignment")
	}

	now := s.now()
	if !assignment.AcceptsSubmissionAt(now) {
		return dto.SubmissionResponse{}, NewInvalidState("late submissions are not allowed for this assignment")
	}

	existing, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, caller.UserID)
	switch {
	case err == nil:
		existing.BeginAttempt(payload.ArtifactURL, now)
		if err := s.submissions.Update(ctx, &existing); err != nil {
			return dto.SubmissionResponse{}, err
		}
		s.logger.Info().Uint("submission_id", existing.ID).Int("version", existing.Version).Msg("work re-submitted")
		return dto.NewSubmissionResponse(existing), nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		submission := models.Submission{
			AssignmentID: assignmentID,
			StudentID:    caller.UserID,
			ArtifactURL:  payload.ArtifactURL,
			Status:       models.SubmissionStatusSubmitted,
			Version:      1,
			SubmittedAt:  now,
		}
		if err := s.submissions.Create(ctx, &submission); err != nil {
			return dto.SubmissionResponse{}, err
		}
		s.logger.Info().Uint("submission_id", submission.ID).Msg("work submitted")
		return dto.NewSubmissionResponse(submission), nil

	default:
		return dto.SubmissionResponse{}, err
	}
}

func (s *submissionService) MySubmissions(ctx context.Context, caller authz.Caller, filter repository.SubmissionFilter) (dto.SubmissionListResponse, error) {
	if !caller.Authenticated {
		return dto.SubmissionListResponse{}, NewUnauthenticated()
	}
	if caller.Role != models.RoleStudent {
		return dto.SubmissionListResponse{}, NewForbidden("only students have submissions of their own")
	}

	normalizeSubmissionFilter(&filter)

	submissions, total, err := s.submissions.ListByStudent(ctx, caller.UserID, filter)
	if err != nil {
		return dto.SubmissionListResponse{}, err
	}

	return dto.SubmissionListResponse{
		Submissions: dto.NewSubmissionResponseSlice(submissions),
		Total:       total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}, nil
}

func (s *submissionService) ListByCourse(ctx context.Context, caller authz.Caller, courseID uint, filter repository.SubmissionFilter) (dto.SubmissionListResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionListResponse{}, NewNotFound("course")
		}
		return dto.SubmissionListResponse{}, err
	}

	if decision := authz.Decide(caller, authz.ActionSubmissionRead, courseFacts(course)); !decision.Allowed() {
		return dto.SubmissionListResponse{}, denialError(decision, "course")
	}

	normalizeSubmissionFilter(&filter)

	submissions, total, err := s.submissions.ListByCourse(ctx, courseID, filter)
	if err != nil {
		return dto.SubmissionListResponse{}, err
	}

	return dto.SubmissionListResponse{
		Submissions: dto.NewSubmissionResponseSlice(submissions),
		Total:       total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}, nil
}

// Grade records a score for a submission. The score must fit the assignment's
// point scale and a graded submission cannot be graded again; staff must first
// request resubmission or the student must submit a new attempt.
func (s *submissionService) Grade(ctx context.Context, caller authz.Caller, submissionID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, assignment, course, err := s.getSubmissionWithContext(ctx, submissionID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	facts := courseFacts(course)
	facts.OwnerID = submission.StudentID
	if decision := authz.Decide(caller, authz.ActionSubmissionGrade, facts); !decision.Allowed() {
		return dto.SubmissionResponse{}, denialError(decision, "submission")
	}

	if submission.IsGraded() {
		return dto.SubmissionResponse{}, NewInvalidState("submission is already graded")
	}

	if payload.Score < 0 || payload.Score > assignment.MaxPoints {
		return dto.SubmissionResponse{}, NewInvalidState(fmt.Sprintf("score must be between 0 and %d", assignment.MaxPoints))
	}

	score := payload.Score
	submission.Status = models.SubmissionStatusGraded
	submission.Score = &score
	submission.Feedback = s.sanitizer.Sanitize(payload.Feedback)

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Int("score", score).Msg("submission graded")

	return dto.NewSubmissionResponse(submission), nil
}

// RequestResubmission sends work back to the student. Any prior score is
// cleared; the feedback is kept as guidance for the next attempt.
func (s *submissionService) RequestResubmission(ctx context.Context, caller authz.Caller, submissionID uint, payload dto.ResubmissionRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, _, course, err := s.getSubmissionWithContext(ctx, submissionID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	facts := courseFacts(course)
	facts.OwnerID = submission.StudentID
	if decision := authz.Decide(caller, authz.ActionSubmissionGrade, facts); !decision.Allowed() {
		return dto.SubmissionResponse{}, denialError(decision, "submission")
	}

	if submission.Status == models.SubmissionStatusResubmissionRequested {
		return dto.SubmissionResponse{}, NewInvalidState("resubmission has already been requested")
	}

	submission.Status = models.SubmissionStatusResubmissionRequested
	submission.Score = nil
	submission.Feedback = s.sanitizer.Sanitize(payload.Feedback)

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Msg("resubmission requested")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) getAssignmentWithCourse(ctx context.Context, assignmentID uint) (models.Assignment, models.Course, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, models.Course{}, NewNotFound("assignment")
		}
		return models.Assignment{}, models.Course{}, err
	}

	course, err := s.courses.GetByID(ctx, assignment.CourseID)
	if err != nil {
		return models.Assignment{}, models.Course{}, err
	}

	return assignment, course, nil
}

func (s *submissionService) getSubmissionWithContext(ctx context.Context, submissionID uint) (models.Submission, models.Assignment, models.Course, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, models.Assignment{}, models.Course{}, NewNotFound("submission")
		}
		return models.Submission{}, models.Assignment{}, models.Course{}, err
	}

	assignment, course, err := s.getAssignmentWithCourse(ctx, submission.AssignmentID)
	if err != nil {
		return models.Submission{}, models.Assignment{}, models.Course{}, err
	}

	return submission, assignment, course, nil
}

func normalizeSubmissionFilter(filter *repository.SubmissionFilter) {
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
}
