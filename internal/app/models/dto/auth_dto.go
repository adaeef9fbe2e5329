package dto

import "github.com/shelfapi/bookshelf/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// ObtainTokenResponse is the flat token shape returned by POST /api/auth/token
type ObtainTokenResponse struct {
	Token string `json:"token"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request.
// Role is optional; when omitted the profile defaults to member.
type RegisterRequest struct {
	Email       string       `json:"email" binding:"required,email"`
	Username    string       `json:"username" binding:"required"`
	Password    string       `json:"password" binding:"required,min=8"`
	DateOfBirth *string      `json:"dateOfBirth,omitempty"`
	Role        *models.Role `json:"role,omitempty"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}
