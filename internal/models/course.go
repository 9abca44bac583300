package models

import "time"

// CourseStatus enumerates the course lifecycle states.
type CourseStatus string

const (
	// CourseStatusDraft is the initial state; drafts are invisible to non-owners.
	CourseStatusDraft CourseStatus = "draft"
	// CourseStatusPublished makes the course and its content publicly readable.
	CourseStatusPublished CourseStatus = "published"
)

// Course is authored and owned by exactly one instructor.
type Course struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	InstructorID uint         `gorm:"not null;index" json:"instructor_id"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       CourseStatus `gorm:"size:32;not null" json:"status"`
	PublishedAt  *time.Time   `json:"published_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Instructor  User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Lessons     []Lesson     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsPublished reports whether the course is visible to the public catalog.
func (c Course) IsPublished() bool {
	return c.Status == CourseStatusPublished
}

// SetStatus applies a lifecycle transition. Entering the published state for the
// first time stamps PublishedAt; leaving it clears the stamp unconditionally, so a
// later republish records a fresh publication time.
func (c *Course) SetStatus(status CourseStatus, now time.Time) {
	c.Status = status
	if status == CourseStatusPublished {
		if c.PublishedAt == nil {
			c.PublishedAt = &now
		}
		return
	}
	c.PublishedAt = nil
}
