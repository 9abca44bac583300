package models

import "time"

// Lesson is a unit of course content. OrderIndex drives display ordering only;
// duplicate indexes are tolerated.
type Lesson struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CourseID   uint      `gorm:"not null;index" json:"course_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	ContentURL string    `gorm:"size:512" json:"content_url"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
