package dto

import (
	"time"

	"github.com/noah-isme/lms-go-api/internal/models"
)

// AssignmentCreateRequest describes the payload for adding an assignment.
type AssignmentCreateRequest struct {
	Title        string     `json:"title" validate:"required,min=3,max=255"`
	Instructions string     `json:"instructions" validate:"required,min=10"`
	DueAt        *time.Time `json:"due_at"`
	MaxPoints    int        `json:"max_points" validate:"required,gte=1"`
	AllowLate    bool       `json:"allow_late"`
}

// AssignmentUpdateRequest describes the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Instructions *string    `json:"instructions" validate:"omitempty,min=10"`
	DueAt        *time.Time `json:"due_at"`
	MaxPoints    *int       `json:"max_points" validate:"omitempty,gte=1"`
	AllowLate    *bool      `json:"allow_late"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID           uint       `json:"id"`
	CourseID     uint       `json:"course_id"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions"`
	DueAt        *time.Time `json:"due_at"`
	MaxPoints    int        `json:"max_points"`
	AllowLate    bool       `json:"allow_late"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           model.ID,
		CourseID:     model.CourseID,
		Title:        model.Title,
		Instructions: model.Instructions,
		DueAt:        model.DueAt,
		MaxPoints:    model.MaxPoints,
		AllowLate:    model.AllowLate,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
