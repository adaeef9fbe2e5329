package dto

import (
	"time"

	"github.com/shelfapi/bookshelf/internal/app/models"
)

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Username    string  `json:"username" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

// UserResponse represents user information in API responses
type UserResponse struct {
	ID              int64      `json:"id" example:"1"`
	Email           string     `json:"email" example:"reader@example.com"`
	Username        string     `json:"username" example:"reader"`
	Role            string     `json:"role" example:"member"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty"`
	Groups          []string   `json:"groups,omitempty"`
}

// NewUserResponse builds a UserResponse from a user model and its profile
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}

	resp := &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		DateOfBirth:     user.DateOfBirth,
		ProfilePhotoURL: user.ProfilePhotoURL,
	}

	if user.Profile != nil {
		resp.Role = string(user.Profile.Role)
	}

	for _, group := range user.Groups {
		resp.Groups = append(resp.Groups, group.Name)
	}

	return resp
}

// DashboardResponse is returned by the role dashboard endpoints
type DashboardResponse struct {
	Role    string `json:"role" example:"librarian"`
	Message string `json:"message" example:"Welcome to the librarian dashboard"`
	User    string `json:"user" example:"reader@example.com"`
}
