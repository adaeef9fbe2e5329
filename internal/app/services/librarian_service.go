package services

import (
	"context"
	"strings"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// LibrarianService handles librarian business logic
type LibrarianService struct {
	librarianRepo repositories.ILibrarianRepository
	libraryRepo   repositories.ILibraryRepository
}

// NewLibrarianService creates a new LibrarianService
func NewLibrarianService(librarianRepo repositories.ILibrarianRepository, libraryRepo repositories.ILibraryRepository) *LibrarianService {
	return &LibrarianService{
		librarianRepo: librarianRepo,
		libraryRepo:   libraryRepo,
	}
}

// CreateLibrarian assigns a librarian to a library. A library can hold
// at most one librarian.
func (s *LibrarianService) CreateLibrarian(ctx context.Context, req *dto.CreateLibrarianRequest) (*models.Librarian, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name must not be empty")
	}

	if _, err := s.libraryRepo.GetByID(ctx, req.LibraryID); err != nil {
		return nil, err
	}

	librarian := &models.Librarian{Name: name, LibraryID: req.LibraryID}
	id, err := s.librarianRepo.Create(ctx, librarian)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("librarianID", id).Int64("libraryID", req.LibraryID).Msg("Librarian assigned")
	return s.librarianRepo.GetByID(ctx, id)
}

// GetLibrarianByID retrieves a librarian
func (s *LibrarianService) GetLibrarianByID(ctx context.Context, id int64) (*models.Librarian, error) {
	return s.librarianRepo.GetByID(ctx, id)
}

// ListLibrarians retrieves all librarians
func (s *LibrarianService) ListLibrarians(ctx context.Context) ([]*models.Librarian, error) {
	return s.librarianRepo.GetAll(ctx)
}

// UpdateLibrarian updates a librarian's name
func (s *LibrarianService) UpdateLibrarian(ctx context.Context, id int64, req *dto.UpdateLibrarianRequest) (*models.Librarian, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name must not be empty")
	}

	librarian := &models.Librarian{ID: id, Name: name}
	if err := s.librarianRepo.Update(ctx, librarian); err != nil {
		return nil, err
	}

	return s.librarianRepo.GetByID(ctx, id)
}

// DeleteLibrarian removes a librarian assignment
func (s *LibrarianService) DeleteLibrarian(ctx context.Context, id int64) error {
	if err := s.librarianRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("librarianID", id).Msg("Librarian removed")
	return nil
}
