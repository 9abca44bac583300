package dto

import (
	"time"

	"github.com/noah-isme/lms-go-api/internal/models"
)

// LessonCreateRequest describes the payload for adding a lesson to a course.
type LessonCreateRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=255"`
	ContentURL string `json:"content_url" validate:"required,url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// LessonUpdateRequest describes the payload for updating a lesson.
type LessonUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=3,max=255"`
	ContentURL *string `json:"content_url" validate:"omitempty,url"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
}

// LessonResponse is the serialized representation returned to API clients.
type LessonResponse struct {
	ID         uint      `json:"id"`
	CourseID   uint      `json:"course_id"`
	Title      string    `json:"title"`
	ContentURL string    `json:"content_url"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLessonResponse converts a model into a DTO.
func NewLessonResponse(model models.Lesson) LessonResponse {
	return LessonResponse{
		ID:         model.ID,
		CourseID:   model.CourseID,
		Title:      model.Title,
		ContentURL: model.ContentURL,
		OrderIndex: model.OrderIndex,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewLessonResponseSlice converts a slice of models into DTOs.
func NewLessonResponseSlice(lessons []models.Lesson) []LessonResponse {
	responses := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, NewLessonResponse(lesson))
	}

	return responses
}
