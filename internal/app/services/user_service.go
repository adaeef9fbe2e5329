package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/filestorage"
	"github.com/shelfapi/bookshelf/internal/pkg/helpers"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// allowed profile photo extensions
var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UserService handles user account and profile business logic
type UserService struct {
	userRepo    repositories.IUserRepository
	fileStorage filestorage.FileStorage
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, fileStorage filestorage.FileStorage) *UserService {
	return &UserService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetCurrentUser retrieves the user with profile and group memberships
func (s *UserService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups, err := s.userRepo.GetGroups(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Groups = groups

	return user, nil
}

// UpdateProfile updates the user's account fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = req.Email
	}

	user.Username = strings.TrimSpace(req.Username)
	if user.Username == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "username must not be empty")
	}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "dateOfBirth must use the YYYY-MM-DD format")
		}
		user.DateOfBirth = &parsed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetCurrentUser(ctx, userID)
}

// UpdateProfilePhoto stores an uploaded photo and replaces the previous one
func (s *UserService) UpdateProfilePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*models.User, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("no file uploaded")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedPhotoExtensions[ext] {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unsupported image format")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photoURL, err := s.fileStorage.SaveFile(fileHeader)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfilePhotoURL(ctx, userID, &photoURL); err != nil {
		_ = s.fileStorage.DeleteFile(photoURL)
		return nil, err
	}

	if user.ProfilePhotoURL != nil {
		if err := s.fileStorage.DeleteFile(*user.ProfilePhotoURL); err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete previous profile photo")
		}
	}

	return s.GetCurrentUser(ctx, userID)
}

// DeleteProfilePhoto removes the user's profile photo
func (s *UserService) DeleteProfilePhoto(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.ProfilePhotoURL == nil {
		return nil
	}

	if err := s.userRepo.UpdateProfilePhotoURL(ctx, userID, nil); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(*user.ProfilePhotoURL); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete profile photo file")
	}

	return nil
}

// ChangeRole updates a user's profile role
func (s *UserService) ChangeRole(ctx context.Context, userID int64, role models.Role) error {
	if !models.ValidRole(role) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid role")
	}
	return s.userRepo.UpdateProfileRole(ctx, userID, role)
}
