// Package services contains the business logic layer sitting between
// controllers and repositories.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// BookService handles book business logic. Publication year validation
// lives here and nowhere else.
type BookService struct {
	bookRepo   repositories.IBookRepository
	authorRepo repositories.IAuthorRepository
}

// NewBookService creates a new BookService
func NewBookService(bookRepo repositories.IBookRepository, authorRepo repositories.IAuthorRepository) *BookService {
	return &BookService{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
	}
}

// validateBook enforces the book domain rules: a non-empty title, a
// publication year no later than the current year, and an existing author.
func (s *BookService) validateBook(ctx context.Context, title string, publicationYear int, authorID int64) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "title must not be empty")
	}

	if publicationYear > time.Now().Year() {
		return apperrors.ErrPublicationYearInFuture
	}

	exists, err := s.authorRepo.Exists(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}

// CreateBook validates and creates a new book
func (s *BookService) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error) {
	if err := s.validateBook(ctx, req.Title, req.PublicationYear, req.AuthorID); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:           strings.TrimSpace(req.Title),
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	id, err := s.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("bookID", id).Str("title", book.Title).Msg("Book created")

	return s.bookRepo.GetByID(ctx, id)
}

// GetBookByID retrieves a single book
func (s *BookService) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// ListBooks retrieves books matching the filter with the total match count
func (s *BookService) ListBooks(ctx context.Context, filter *dto.BookFilter) ([]*models.Book, int64, error) {
	return s.bookRepo.List(ctx, filter)
}

// UpdateBook replaces all mutable fields of a book
func (s *BookService) UpdateBook(ctx context.Context, id int64, req *dto.UpdateBookRequest) (*models.Book, error) {
	if err := s.validateBook(ctx, req.Title, req.PublicationYear, req.AuthorID); err != nil {
		return nil, err
	}

	book := &models.Book{
		ID:              id,
		Title:           strings.TrimSpace(req.Title),
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, id)
}

// PatchBook applies a partial update, leaving nil fields unchanged
func (s *BookService) PatchBook(ctx context.Context, id int64, req *dto.PatchBookRequest) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}
	if req.AuthorID != nil {
		book.AuthorID = *req.AuthorID
	}

	if err := s.validateBook(ctx, book.Title, book.PublicationYear, book.AuthorID); err != nil {
		return nil, err
	}
	book.Title = strings.TrimSpace(book.Title)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, id)
}

// DeleteBook deletes a book
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("bookID", id).Msg("Book deleted")
	return nil
}
