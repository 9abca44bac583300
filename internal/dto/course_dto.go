package dto

import (
	"time"

	"github.com/noah-isme/lms-go-api/internal/models"
)

// CourseCreateRequest describes the payload for creating a course. New courses
// always start as drafts.
type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"required,min=10"`
}

// CourseUpdateRequest describes the payload for updating a course, including
// lifecycle transitions via Status.
type CourseUpdateRequest struct {
	Title       string              `json:"title" validate:"required,min=3,max=255"`
	Description string              `json:"description" validate:"required,min=10"`
	Status      models.CourseStatus `json:"status" validate:"required,oneof=draft published"`
}

// CourseResponse is the serialized representation returned to API clients.
type CourseResponse struct {
	ID           uint                `json:"id"`
	InstructorID uint                `json:"instructor_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.CourseStatus `json:"status"`
	PublishedAt  *time.Time          `json:"published_at"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CourseListResponse is a paginated catalog page.
type CourseListResponse struct {
	Courses  []CourseResponse `json:"courses"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:           model.ID,
		InstructorID: model.InstructorID,
		Title:        model.Title,
		Description:  model.Description,
		Status:       model.Status,
		PublishedAt:  model.PublishedAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}
