package models

import "time"

// Role identifies the single role a user holds. Roles are immutable after creation.
type Role string

const (
	// RoleStudent can enroll in published courses and submit work.
	RoleStudent Role = "student"
	// RoleInstructor can author courses and grade submissions for courses they own.
	RoleInstructor Role = "instructor"
	// RoleAdmin bypasses ownership checks entirely.
	RoleAdmin Role = "admin"
)

// User represents an account that can authenticate against the API.
// Role-specific profile fields live on the same row; only the fields matching
// the role are populated.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName      string    `gorm:"size:255;not null" json:"full_name"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	Role          Role      `gorm:"size:32;not null" json:"role"`
	StudentNumber string    `gorm:"size:64" json:"student_number,omitempty"`
	Bio           string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsStaff reports whether the user may perform instructor-level actions somewhere.
func (u User) IsStaff() bool {
	return u.Role == RoleInstructor || u.Role == RoleAdmin
}
