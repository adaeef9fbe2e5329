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

// AuthorService handles author business logic
type AuthorService struct {
	authorRepo repositories.IAuthorRepository
}

// NewAuthorService creates a new AuthorService
func NewAuthorService(authorRepo repositories.IAuthorRepository) *AuthorService {
	return &AuthorService{authorRepo: authorRepo}
}

// CreateAuthor creates a new author
func (s *AuthorService) CreateAuthor(ctx context.Context, req *dto.CreateAuthorRequest) (*models.Author, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name must not be empty")
	}

	author := &models.Author{Name: name}
	id, err := s.authorRepo.Create(ctx, author)
	if err != nil {
		return nil, err
	}
	author.ID = id

	logger.Info().Int64("authorID", id).Str("name", name).Msg("Author created")
	return author, nil
}

// GetAuthorByID retrieves an author together with the author's books
func (s *AuthorService) GetAuthorByID(ctx context.Context, id int64) (*models.Author, error) {
	return s.authorRepo.GetWithBooks(ctx, id)
}

// ListAuthors retrieves all authors
func (s *AuthorService) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	return s.authorRepo.GetAll(ctx)
}

// UpdateAuthor updates an author's name
func (s *AuthorService) UpdateAuthor(ctx context.Context, id int64, req *dto.UpdateAuthorRequest) (*models.Author, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "name must not be empty")
	}

	author := &models.Author{ID: id, Name: name}
	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// DeleteAuthor deletes an author. The author's books are removed with it.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id int64) error {
	if err := s.authorRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("authorID", id).Msg("Author deleted with dependent books")
	return nil
}
