package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/lms-go-api/internal/models"
	"github.com/noah-isme/lms-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// --- users ---

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[m.nextID] = *user
	m.nextID++
	return nil
}

func (m *memoryUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// --- courses ---

type memoryCourseRepo struct {
	courses map[uint]models.Course
	nextID  uint
}

func newMemoryCourseRepo() *memoryCourseRepo {
	return &memoryCourseRepo{courses: make(map[uint]models.Course), nextID: 1}
}

func (m *memoryCourseRepo) ListPublished(_ context.Context, filter repository.CourseFilter) ([]models.Course, int64, error) {
	published := make([]models.Course, 0, len(m.courses))
	for _, course := range m.courses {
		if course.IsPublished() {
			published = append(published, course)
		}
	}

	sort.Slice(published, func(i, j int) bool {
		return published[i].PublishedAt.After(*published[j].PublishedAt)
	})

	total := int64(len(published))
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= len(published) {
			return []models.Course{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(published) {
			end = len(published)
		}
		published = published[start:end]
	}

	return published, total, nil
}

func (m *memoryCourseRepo) GetByID(_ context.Context, id uint) (models.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return models.Course{}, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (m *memoryCourseRepo) Create(_ context.Context, course *models.Course) error {
	course.ID = m.nextID
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()
	m.courses[m.nextID] = *course
	m.nextID++
	return nil
}

func (m *memoryCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := m.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	course.UpdatedAt = time.Now()
	m.courses[course.ID] = *course
	return nil
}

func (m *memoryCourseRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

// --- lessons ---

type memoryLessonRepo struct {
	lessons map[uint]models.Lesson
	nextID  uint
}

func newMemoryLessonRepo() *memoryLessonRepo {
	return &memoryLessonRepo{lessons: make(map[uint]models.Lesson), nextID: 1}
}

func (m *memoryLessonRepo) ListByCourse(_ context.Context, courseID uint) ([]models.Lesson, error) {
	results := make([]models.Lesson, 0, len(m.lessons))
	for _, lesson := range m.lessons {
		if lesson.CourseID == courseID {
			results = append(results, lesson)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].OrderIndex < results[j].OrderIndex
	})
	return results, nil
}

func (m *memoryLessonRepo) GetByID(_ context.Context, id uint) (models.Lesson, error) {
	lesson, ok := m.lessons[id]
	if !ok {
		return models.Lesson{}, gorm.ErrRecordNotFound
	}
	return lesson, nil
}

func (m *memoryLessonRepo) Create(_ context.Context, lesson *models.Lesson) error {
	lesson.ID = m.nextID
	m.lessons[m.nextID] = *lesson
	m.nextID++
	return nil
}

func (m *memoryLessonRepo) Update(_ context.Context, lesson *models.Lesson) error {
	if _, ok := m.lessons[lesson.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.lessons[lesson.ID] = *lesson
	return nil
}

func (m *memoryLessonRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.lessons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.lessons, id)
	return nil
}

// --- assignments ---

type memoryAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uint]models.Assignment), nextID: 1}
}

func (m *memoryAssignmentRepo) ListByCourse(_ context.Context, courseID uint) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for _, assignment := range m.assignments {
		if assignment.CourseID == courseID {
			results = append(results, assignment)
		}
	}
	return results, nil
}

func (m *memoryAssignmentRepo) GetByID(_ context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	assignment.ID = m.nextID
	m.assignments[m.nextID] = *assignment
	m.nextID++
	return nil
}

func (m *memoryAssignmentRepo) Update(_ context.Context, assignment *models.Assignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

// --- enrollments ---

type memoryEnrollmentRepo struct {
	enrollments map[uint]models.Enrollment
	nextID      uint
}

func newMemoryEnrollmentRepo() *memoryEnrollmentRepo {
	return &memoryEnrollmentRepo{enrollments: make(map[uint]models.Enrollment), nextID: 1}
}

func (m *memoryEnrollmentRepo) GetByID(_ context.Context, id uint) (models.Enrollment, error) {
	enrollment, ok := m.enrollments[id]
	if !ok {
		return models.Enrollment{}, gorm.ErrRecordNotFound
	}
	return enrollment, nil
}

func (m *memoryEnrollmentRepo) FindActive(_ context.Context, studentID, courseID uint) (models.Enrollment, error) {
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID && enrollment.IsActive() {
			return enrollment, nil
		}
	}
	return models.Enrollment{}, gorm.ErrRecordNotFound
}

func (m *memoryEnrollmentRepo) ListByStudent(_ context.Context, studentID uint, filter repository.EnrollmentFilter) ([]models.Enrollment, int64, error) {
	results := make([]models.Enrollment, 0, len(m.enrollments))
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID {
			results = append(results, enrollment)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].EnrolledAt.After(results[j].EnrolledAt)
	})
	return results, int64(len(results)), nil
}

func (m *memoryEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = m.nextID
	m.enrollments[m.nextID] = *enrollment
	m.nextID++
	return nil
}

func (m *memoryEnrollmentRepo) Update(_ context.Context, enrollment *models.Enrollment) error {
	if _, ok := m.enrollments[enrollment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.enrollments[enrollment.ID] = *enrollment
	return nil
}

// --- submissions ---

type memorySubmissionRepo struct {
	submissions map[uint]models.Submission
	nextID      uint
}

func newMemorySubmissionRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{submissions: make(map[uint]models.Submission), nextID: 1}
}

func (m *memorySubmissionRepo) GetByID(_ context.Context, id uint) (models.Submission, error) {
	submission, ok := m.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (m *memorySubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID uint) (models.Submission, error) {
	for _, submission := range m.submissions {
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (m *memorySubmissionRepo) ListByStudent(_ context.Context, studentID uint, filter repository.SubmissionFilter) ([]models.Submission, int64, error) {
	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		if submission.StudentID == studentID {
			results = append(results, submission)
		}
	}
	return results, int64(len(results)), nil
}

func (m *memorySubmissionRepo) ListByCourse(_ context.Context, courseID uint, filter repository.SubmissionFilter) ([]models.Submission, int64, error) {
	// The memory repo has no assignment join; course scoping is exercised in the
	// repository tests against a real database.
	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		results = append(results, submission)
	}
	return results, int64(len(results)), nil
}

func (m *memorySubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	submission.ID = m.nextID
	m.submissions[m.nextID] = *submission
	m.nextID++
	return nil
}

func (m *memorySubmissionRepo) Update(_ context.Context, submission *models.Submission) error {
	if _, ok := m.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.submissions[submission.ID] = *submission
	return nil
}
