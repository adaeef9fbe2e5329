package services

import (
	"context"
	"errors"
	"time"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
	"github.com/shelfapi/bookshelf/internal/pkg/helpers"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// defaultGroupForRole maps a profile role to the group seeded for it
func defaultGroupForRole(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return models.GroupAdmins
	case models.RoleLibrarian:
		return models.GroupEditors
	default:
		return models.GroupViewers
	}
}

// AuthService handles registration, login, and token lifecycle
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	groupRepo  repositories.IGroupRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	groupRepo repositories.IGroupRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		groupRepo:  groupRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account. The profile role defaults to member
// unless the request carries a valid role override.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	role := models.RoleMember
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid role")
		}
		role = *req.Role
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "dateOfBirth must use the YYYY-MM-DD format")
		}
		dateOfBirth = &parsed
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       req.Email,
		Username:    req.Username,
		Password:    hashedPassword,
		DateOfBirth: dateOfBirth,
	}

	userID, err := s.userRepo.Create(ctx, user, role)
	if err != nil {
		return nil, err
	}

	// Group membership is best effort; the account stands without it.
	if group, err := s.groupRepo.GetByName(ctx, defaultGroupForRole(role)); err == nil {
		if err := s.groupRepo.AddUserToGroup(ctx, userID, group.ID); err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to add user to default group")
		}
	}

	logger.Info().Int64("userID", userID).Str("email", req.Email).Str("role", string(role)).Msg("User registered")

	return &dto.RegisterResponse{
		UserID: userID,
		Email:  req.Email,
		Role:   string(role),
	}, nil
}

// Login authenticates a user by email and password and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, user.Profile.Role)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	groups, err := s.userRepo.GetGroups(ctx, user.ID)
	if err == nil {
		user.Groups = groups
	}

	logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// ObtainToken authenticates a user and returns a bare access token
func (s *AuthService) ObtainToken(ctx context.Context, req *dto.LoginRequest) (*dto.ObtainTokenResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, _, _, _, err := s.jwtService.GenerateTokenPair(user, user.Profile.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return &dto.ObtainTokenResponse{Token: accessToken}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The used refresh token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, user.Profile.Role)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Revoke(ctx, stored.Token); err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             expiresIn,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}

// Logout revokes every refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// PurgeExpiredTokens deletes expired and revoked refresh tokens,
// returning the number of rows removed.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx)
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
