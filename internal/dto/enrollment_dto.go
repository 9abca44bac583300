package dto

import (
	"time"

	"github.com/noah-isme/lms-go-api/internal/models"
)

// EnrollmentResponse is the serialized representation returned to API clients.
type EnrollmentResponse struct {
	ID         uint                    `json:"id"`
	StudentID  uint                    `json:"student_id"`
	CourseID   uint                    `json:"course_id"`
	Status     models.EnrollmentStatus `json:"status"`
	EnrolledAt time.Time               `json:"enrolled_at"`
}

// EnrollmentListResponse is a paginated page of a student's enrollments.
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

// NewEnrollmentResponse converts a model into a DTO.
func NewEnrollmentResponse(model models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         model.ID,
		StudentID:  model.StudentID,
		CourseID:   model.CourseID,
		Status:     model.Status,
		EnrolledAt: model.EnrolledAt,
	}
}

// NewEnrollmentResponseSlice converts a slice of models into DTOs.
func NewEnrollmentResponseSlice(enrollments []models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewEnrollmentResponse(enrollment))
	}

	return responses
}
