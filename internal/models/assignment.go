package models

import "time"

// Assignment is gradable coursework attached to a course.
type Assignment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CourseID     uint       `gorm:"not null;index" json:"course_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Instructions string     `gorm:"type:text" json:"instructions"`
	DueAt        *time.Time `json:"due_at"`
	MaxPoints    int        `gorm:"not null" json:"max_points"`
	AllowLate    bool       `gorm:"not null;default:false" json:"allow_late"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsPastDue reports whether the deadline has passed at the reference time.
// Assignments without a deadline are never past due.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueAt != nil && reference.After(*a.DueAt)
}

// AcceptsSubmissionAt reports whether a submission made at the reference time
// should be accepted under the late policy.
func (a Assignment) AcceptsSubmissionAt(reference time.Time) bool {
	return a.AllowLate || !a.IsPastDue(reference)
}
