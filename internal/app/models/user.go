package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// Email is the authentication identifier.
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"reader@example.com"`
	Username        string     `json:"username" db:"username" example:"reader"`
	Password        string     `json:"-" db:"password"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	// Profile is the 1:1 profile row, created together with the user
	Profile *UserProfile `json:"profile,omitempty"`
	// Groups holds the user's group memberships when loaded
	Groups []*Group `json:"groups,omitempty"`
}

// UserProfile defines the profile model based on the 'user_profiles' table.
// Exactly one profile exists per user; the default role is member.
type UserProfile struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`
	Role   Role  `json:"role" db:"role" example:"member"`
}
