package service

import (
	"context"
	"errors"
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

// CourseService orchestrates the course lifecycle and its nested lessons and
// assignments. Every entry point takes the explicit caller identity and asks
// the policy before touching anything.
type CourseService interface {
	Get(ctx context.Context, caller authz.Caller, id uint) (dto.CourseResponse, error)
	Create(ctx context.Context, caller authz.Caller, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error

	ListLessons(ctx context.Context, caller authz.Caller, courseID uint) ([]dto.LessonResponse, error)
	AddLesson(ctx context.Context, caller authz.Caller, courseID uint, payload dto.LessonCreateRequest) (dto.LessonResponse, error)
	UpdateLesson(ctx context.Context, caller authz.Caller, courseID, lessonID uint, payload dto.LessonUpdateRequest) (dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, caller authz.Caller, courseID, lessonID uint) error

	ListAssignments(ctx context.Context, caller authz.Caller, courseID uint) ([]dto.AssignmentResponse, error)
	AddAssignment(ctx context.Context, caller authz.Caller, courseID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, caller authz.Caller, courseID, assignmentID uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, caller authz.Caller, courseID, assignmentID uint) error
}

type courseService struct {
	courses     repository.CourseRepository
	lessons     repository.LessonRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(courses repository.CourseRepository, lessons repository.LessonRepository, assignments repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:     courses,
		lessons:     lessons,
		assignments: assignments,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "course_service").Logger(),
		now:         time.Now,
	}
}

// courseFacts builds the ownership facts the policy needs for a course action.
func courseFacts(course models.Course) authz.Resource {
	return authz.Resource{
		CoursePublished: course.IsPublished(),
		CourseOwnerID:   course.InstructorID,
	}
}

// getCourseForRead fetches a course and applies the read policy. Absent courses
// and hidden drafts produce the identical not-found error.
func (s *courseService) getCourseForRead(ctx context.Context, caller authz.Caller, id uint) (models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, NewNotFound("course")
		}
		return models.Course{}, err
	}

	if decision := authz.Decide(caller, authz.ActionCourseRead, courseFacts(course)); !decision.Allowed() {
		return models.Course{}, denialError(decision, "course")
	}

	return course, nil
}

// getCourseForModify fetches a course and applies the write policy.
func (s *courseService) getCourseForModify(ctx context.Context, caller authz.Caller, id uint) (models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, NewNotFound("course")
		}
		return models.Course{}, err
	}

	if decision := authz.Decide(caller, authz.ActionCourseModify, courseFacts(course)); !decision.Allowed() {
		return models.Course{}, denialError(decision, "course")
	}

	return course, nil
}

func (s *courseService) Get(ctx context.Context, caller authz.Caller, id uint) (dto.CourseResponse, error) {
	course, err := s.getCourseForRead(ctx, caller, id)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, caller authz.Caller, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	if decision := authz.Decide(caller, authz.ActionCourseCreate, authz.Resource{}); !decision.Allowed() {
		return dto.CourseResponse{}, denialError(decision, "course")
	}

	course := models.Course{
		InstructorID: caller.UserID,
		Title:        payload.Title,
		Description:  s.sanitizer.Sanitize(payload.Description),
		Status:       models.CourseStatusDraft,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Uint("instructor_id", course.InstructorID).Msg("course created")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.getCourseForModify(ctx, caller, id)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	course.Title = payload.Title
	course.Description = s.sanitizer.Sanitize(payload.Description)
	course.SetStatus(payload.Status, s.now())

	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Str("status", string(course.Status)).Msg("course updated")

	return dto.NewCourseResponse(course), nil
}

// Delete removes a course and, through cascade constraints, its lessons,
// assignments, enrollments and submissions.
func (s *courseService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	course, err := s.getCourseForModify(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, course.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("course_id", course.ID).Msg("course deleted")

	return nil
}

// --- Lessons ---

func (s *courseService) ListLessons(ctx context.Context, caller authz.Caller, courseID uint) ([]dto.LessonResponse, error) {
	if _, err := s.getCourseForRead(ctx, caller, courseID); err != nil {
		return nil, err
	}

	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewLessonResponseSlice(lessons), nil
}

func (s *courseService) AddLesson(ctx context.Context, caller authz.Caller, courseID uint, payload dto.LessonCreateRequest) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	if _, err := s.getCourseForModify(ctx, caller, courseID); err != nil {
		return dto.LessonResponse{}, err
	}

	lesson := models.Lesson{
		CourseID:   courseID,
		Title:      payload.Title,
		ContentURL: payload.ContentURL,
		OrderIndex: payload.OrderIndex,
	}

	if err := s.lessons.Create(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, err
	}

	return dto.NewLessonResponse(lesson), nil
}

func (s *courseService) UpdateLesson(ctx context.Context, caller authz.Caller, courseID, lessonID uint, payload dto.LessonUpdateRequest) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	if _, err := s.getCourseForModify(ctx, caller, courseID); err != nil {
		return dto.LessonResponse{}, err
	}

	lesson, err := s.getLessonInCourse(ctx, courseID, lessonID)
	if err != nil {
		return dto.LessonResponse{}, err
	}

	if payload.Title != nil {
		lesson.Title = *payload.Title
	}
	if payload.ContentURL != nil {
		lesson.ContentURL = *payload.ContentURL
	}
	if payload.OrderIndex != nil {
		lesson.OrderIndex = *payload.OrderIndex
	}

	if err := s.lessons.Update(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, err
	}

	return dto.NewLessonResponse(lesson), nil
}

func (s *courseService) DeleteLesson(ctx context.Context, caller authz.Caller, courseID, lessonID uint) error {
	if _, err := s.getCourseForModify(ctx, caller, courseID); err != nil {
		return err
	}

	lesson, err := s.getLessonInCourse(ctx, courseID, lessonID)
	if err != nil {
		return err
	}

	return s.lessons.Delete(ctx, lesson.ID)
}

// getLessonInCourse fetches a lesson and verifies it belongs to the course
// named in the route, so a lesson cannot be reached through a foreign course.
func (s *courseService) getLessonInCourse(ctx context.Context, courseID, lessonID uint) (models.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Lesson{}, NewNotFound("lesson")
		}
		return models.Lesson{}, err
	}
	if lesson.CourseID != courseID {
		return models.Lesson{}, NewNotFound("lesson")
	}

	return lesson, nil
}

// --- Assignments ---

func (s *courseService) ListAssignments(ctx context.Context, caller authz.Caller, courseID uint) ([]dto.AssignmentResponse, error) {
	if _, err := s.getCourseForRead(ctx, caller, courseID); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *courseService) AddAssignment(ctx context.Context, caller authz.Caller, courseID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.getCourseForModify(ctx, caller, courseID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		CourseID:     courseID,
		Title:        payload.Title,
		Instructions: s.sanitizer.Sanitize(payload.Instructions),
		DueAt:        payload.DueAt,
		MaxPoints:    payload.MaxPoints,
		AllowLate:    payload.AllowLate,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *courseService) UpdateAssignment(ctx context.Context, caller authz.Caller, courseID, assignmentID uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.getCourseForModify(ctx, caller, courseID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.getAssignmentInCourse(ctx, courseID, assignmentID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Instructions != nil {
		assignment.Instructions = s.sanitizer.Sanitize(*payload.Instructions)
	}
	if payload.DueAt != nil {
		assignment.DueAt = payload.DueAt
	}
	if payload.MaxPoints != nil {
		assignment.MaxPoints = *payload.MaxPoints
	}
	if payload.AllowLate != nil {
		assignment.AllowLate = *payload.AllowLate
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *courseService) DeleteAssignment(ctx context.Context, caller authz.Caller, courseID, assignmentID uint) error {
	if _, err := s.getCourseForModify(ctx, caller, courseID); err != nil {
		return err
	}

	assignment, err := s.getAssignmentInCourse(ctx, courseID, assignmentID)
	if err != nil {
		return err
	}

	return s.assignments.Delete(ctx, assignment.ID)
}

func (s *courseService) getAssignmentInCourse(ctx context.Context, courseID, assignmentID uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, NewNotFound("assignment")
		}
		return models.Assignment{}, err
	}
	if assignment.CourseID != courseID {
		return models.Assignment{}, NewNotFound("assignment")
	}

	return assignment, nil
}
