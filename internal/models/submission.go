package models

import "time"

// SubmissionStatus enumerates the submission lifecycle states.
type SubmissionStatus string

const (
	// SubmissionStatusSubmitted means work has been handed in and awaits grading.
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	// SubmissionStatusGraded means a score has been recorded.
	SubmissionStatusGraded SubmissionStatus = "graded"
	// SubmissionStatusResubmissionRequested means staff sent the work back.
	SubmissionStatusResubmissionRequested SubmissionStatus = "resubmission_requested"
)

// Submission is the current attempt by one student at one assignment. Re-submitting
// mutates the row in place and increments Version rather than inserting a new row.
// Score is non-nil exactly when Status is graded.
type Submission struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	AssignmentID uint             `gorm:"not null;index:idx_submission_assignment_student" json:"assignment_id"`
	StudentID    uint             `gorm:"not null;index:idx_submission_assignment_student" json:"student_id"`
	ArtifactURL  string           `gorm:"size:512;not null" json:"artifact_url"`
	Status       SubmissionStatus `gorm:"size:32;not null" json:"status"`
	Score        *int             `json:"score"`
	Feedback     string           `gorm:"type:text" json:"feedback"`
	Version      int              `gorm:"not null;default:1" json:"version"`
	SubmittedAt  time.Time        `gorm:"not null" json:"submitted_at"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	Assignment Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Student    User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsGraded reports whether the submission carries a final score.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// BeginAttempt overwrites the submission with a fresh attempt: the artifact and
// timestamp are replaced, the version increments, and any prior score or feedback
// is cleared.
func (s *Submission) BeginAttempt(artifactURL string, now time.Time) {
	s.ArtifactURL = artifactURL
	s.SubmittedAt = now
	s.Status = SubmissionStatusSubmitted
	s.Score = nil
	s.Feedback = ""
	s.Version++
}
