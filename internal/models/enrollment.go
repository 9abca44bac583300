package models

import "time"

// EnrollmentStatus enumerates the enrollment lifecycle states.
type EnrollmentStatus string

const (
	// EnrollmentStatusActive is the initial state created by enrolling.
	EnrollmentStatusActive EnrollmentStatus = "active"
	// EnrollmentStatusCancelled is terminal; set by the student.
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
	// EnrollmentStatusCompleted is terminal; set by course staff.
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
)

// Enrollment ties a student to a course. At most one active enrollment may exist
// per (student, course) pair; re-enrolling after cancellation creates a new row.
type Enrollment struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	StudentID  uint             `gorm:"not null;index:idx_enrollment_student_course" json:"student_id"`
	CourseID   uint             `gorm:"not null;index:idx_enrollment_student_course" json:"course_id"`
	Status     EnrollmentStatus `gorm:"size:32;not null" json:"status"`
	EnrolledAt time.Time        `gorm:"not null" json:"enrolled_at"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	Student User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Course  Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsActive reports whether the enrollment still admits submissions and transitions.
func (e Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}
