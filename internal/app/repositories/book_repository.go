package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// IBookRepository defines the interface for book database operations
type IBookRepository interface {
	Create(ctx context.Context, book *models.Book) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, filter *dto.BookFilter) ([]*models.Book, int64, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
}

// BookRepository handles book database operations
type BookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) (int64, error) {
	sql, args, err := r.sb.Insert("books").
		Columns("title", "publication_year", "author_id").
		Values(book.Title, book.PublicationYear, book.AuthorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create book query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrAuthorNotFound
		}
		logger.Error().Err(err).Msg("Error executing create book query")
		return 0, fmt.Errorf("error creating book: %w", err)
	}

	return id, nil
}

// GetByID retrieves a book by ID together with its author name
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	sql, args, err := r.sb.Select("b.id", "b.title", "b.publication_year", "b.author_id", "a.name").
		From("books b").
		Join("authors a ON a.id = b.author_id").
		Where(squirrel.Eq{"b.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get book query: %w", err)
	}

	book := &models.Book{Author: &models.Author{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&book.ID, &book.Title, &book.PublicationYear, &book.AuthorID, &book.Author.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		logger.Error().Err(err).Int64("bookID", id).Msg("Error scanning book row")
		return nil, fmt.Errorf("error getting book by ID: %w", err)
	}
	book.Author.ID = book.AuthorID

	return book, nil
}

// escapeLikePattern escapes LIKE metacharacters so the search term only
// matches literally.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List retrieves books matching the filter along with the total match count.
// Supported filters: author ID and case-insensitive title substring search.
func (r *BookRepository) List(ctx context.Context, filter *dto.BookFilter) ([]*models.Book, int64, error) {
	if filter == nil {
		filter = &dto.BookFilter{}
	}

	conditions := squirrel.And{}
	if filter.AuthorID > 0 {
		conditions = append(conditions, squirrel.Eq{"b.author_id": filter.AuthorID})
	}
	if filter.Search != "" {
		conditions = append(conditions, squirrel.ILike{"b.title": "%" + escapeLikePattern(filter.Search) + "%"})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("books b")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count books query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting books: %w", err)
	}

	listBuilder := r.sb.Select("b.id", "b.title", "b.publication_year", "b.author_id", "a.name").
		From("books b").
		Join("authors a ON a.id = b.author_id").
		OrderBy("b.id ASC")
	if len(conditions) > 0 {
		listBuilder = listBuilder.Where(conditions)
	}
	if filter.Size > 0 {
		offset := uint64((filter.Page - 1) * filter.Size)
		if filter.Page < 1 {
			offset = 0
		}
		listBuilder = listBuilder.Limit(uint64(filter.Size)).Offset(offset)
	}

	sql, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list books query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		book := &models.Book{Author: &models.Author{}}
		if err := rows.Scan(&book.ID, &book.Title, &book.PublicationYear, &book.AuthorID, &book.Author.Name); err != nil {
			return nil, 0, fmt.Errorf("error scanning book row: %w", err)
		}
		book.Author.ID = book.AuthorID
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, total, nil
}

// Update updates an existing book
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	sql, args, err := r.sb.Update("books").
		SetMap(map[string]interface{}{
			"title":            book.Title,
			"publication_year": book.PublicationYear,
			"author_id":        book.AuthorID,
		}).
		Where(squirrel.Eq{"id": book.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update book query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrAuthorNotFound
		}
		logger.Error().Err(err).Int64("bookID", book.ID).Msg("Error executing update book query")
		return fmt.Errorf("error updating book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Delete deletes a book by ID
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("books").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete book query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookID", id).Msg("Error executing delete book query")
		return fmt.Errorf("error deleting book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}
