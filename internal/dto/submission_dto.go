package dto

import (
	"time"

	"github.com/noah-isme/lms-go-api/internal/models"
)

// SubmissionCreateRequest describes the payload for handing in work. The same
// payload is used for re-submission; the service decides whether a new row or a
// new version of the existing one is created.
type SubmissionCreateRequest struct {
	ArtifactURL string `json:"artifact_url" validate:"required,url"`
}

// GradeRequest describes the payload for grading a submission.
type GradeRequest struct {
	Score    int    `json:"score" validate:"gte=0"`
	Feedback string `json:"feedback"`
}

// ResubmissionRequest describes the payload for sending work back to the student.
type ResubmissionRequest struct {
	Feedback string `json:"feedback" validate:"required,min=3"`
}

// SubmissionResponse is the serialized representation returned to API clients.
type SubmissionResponse struct {
	ID           uint                    `json:"id"`
	AssignmentID uint                    `json:"assignment_id"`
	StudentID    uint                    `json:"student_id"`
	ArtifactURL  string                  `json:"artifact_url"`
	Status       models.SubmissionStatus `json:"status"`
	Score        *int                    `json:"score"`
	Feedback     string                  `json:"feedback,omitempty"`
	Version      int                     `json:"version"`
	SubmittedAt  time.Time               `json:"submitted_at"`
}

// SubmissionListResponse is a paginated page of submissions.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		ArtifactURL:  model.ArtifactURL,
		Status:       model.Status,
		Score:        model.Score,
		Feedback:     model.Feedback,
		Version:      model.Version,
		SubmittedAt:  model.SubmittedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
