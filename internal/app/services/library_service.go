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

// LibraryService handles library business logic, including the
// library to book associations.
type LibraryService struct {
	libraryRepo repositories.ILibraryRepository
	bookRepo    repositories.IBookRepository
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(libraryRepo repositories.ILibraryRepository, bookRepo repositories.IBookRepository) *LibraryService {
	return &LibraryService{
		libraryRepo: libraryRepo,
		bookRepo:    bookRepo,
	}
}

// CreateLibrary creates a new library
func (s *LibraryService) CreateLibrary(ctx context.Context, req *dto.CreateLibraryRequest) (*models.Library, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name must not be empty")
	}

	library := &models.Library{Name: name}
	id, err := s.libraryRepo.Create(ctx, library)
	if err != nil {
		return nil, err
	}
	library.ID = id

	logger.Info().Int64("libraryID", id).Str("name", name).Msg("Library created")
	return library, nil
}

// GetLibraryByID retrieves a library with its book set and librarian
func (s *LibraryService) GetLibraryByID(ctx context.Context, id int64) (*models.Library, error) {
	return s.libraryRepo.GetWithRelations(ctx, id)
}

// ListLibraries retrieves all libraries
func (s *LibraryService) ListLibraries(ctx context.Context) ([]*models.Library, error) {
	return s.libraryRepo.GetAll(ctx)
}

// UpdateLibrary updates a library's name
func (s *LibraryService) UpdateLibrary(ctx context.Context, id int64, req *dto.UpdateLibraryRequest) (*models.Library, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name must not be empty")
	}

	library := &models.Library{ID: id, Name: name}
	if err := s.libraryRepo.Update(ctx, library); err != nil {
		return nil, err
	}

	return library, nil
}

// DeleteLibrary deletes a library
func (s *LibraryService) DeleteLibrary(ctx context.Context, id int64) error {
	if err := s.libraryRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("libraryID", id).Msg("Library deleted")
	return nil
}

// AddBook associates a book with a library. Both must exist.
func (s *LibraryService) AddBook(ctx context.Context, libraryID, bookID int64) error {
	if _, err := s.libraryRepo.GetByID(ctx, libraryID); err != nil {
		return err
	}
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return err
	}

	if err := s.libraryRepo.AddBook(ctx, libraryID, bookID); err != nil {
		return err
	}

	logger.Info().Int64("libraryID", libraryID).Int64("bookID", bookID).Msg("Book added to library")
	return nil
}

// RemoveBook removes a book association from a library
func (s *LibraryService) RemoveBook(ctx context.Context, libraryID, bookID int64) error {
	if _, err := s.libraryRepo.GetByID(ctx, libraryID); err != nil {
		return err
	}

	if err := s.libraryRepo.RemoveBook(ctx, libraryID, bookID); err != nil {
		return err
	}

	logger.Info().Int64("libraryID", libraryID).Int64("bookID", bookID).Msg("Book removed from library")
	return nil
}
