package dto

import "github.com/noah-isme/lms-go-api/internal/models"

// LoginRequest carries the credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// WhoAmIResponse echoes the authenticated caller's identity.
type WhoAmIResponse struct {
	ID            uint        `json:"id"`
	Email         string      `json:"email"`
	FullName      string      `json:"full_name"`
	Role          models.Role `json:"role"`
	StudentNumber string      `json:"student_number,omitempty"`
	Bio           string      `json:"bio,omitempty"`
}

// NewWhoAmIResponse converts a user model into the whoami DTO.
func NewWhoAmIResponse(user models.User) WhoAmIResponse {
	return WhoAmIResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          user.Role,
		StudentNumber: user.StudentNumber,
		Bio:           user.Bio,
	}
}
