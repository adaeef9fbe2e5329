package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// IAuthorRepository defines the interface for author database operations
type IAuthorRepository interface {
	Create(ctx context.Context, author *models.Author) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	GetWithBooks(ctx context.Context, id int64) (*models.Author, error)
	GetAll(ctx context.Context) ([]*models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// AuthorRepository handles author database operations
type AuthorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuthorRepository creates a new AuthorRepository
func NewAuthorRepository(db *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new author
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) (int64, error) {
	sql, args, err := r.sb.Insert("authors").
		Columns("name").
		Values(author.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create author query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create author query")
		return 0, fmt.Errorf("error creating author: %w", err)
	}

	return id, nil
}

// GetByID retrieves an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("authors").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get author query: %w", err)
	}

	author := &models.Author{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAuthorNotFound
		}
		logger.Error().Err(err).Int64("authorID", id).Msg("Error scanning author row")
		return nil, fmt.Errorf("error getting author by ID: %w", err)
	}

	return author, nil
}

// GetWithBooks retrieves an author and the author's books
func (r *AuthorRepository) GetWithBooks(ctx context.Context, id int64) (*models.Author, error) {
	author, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Select("id", "title", "publication_year", "author_id").
		From("books").
		Where(squirrel.Eq{"author_id": id}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build author books query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying author books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		book := &models.Book{}
		if err := rows.Scan(&book.ID, &book.Title, &book.PublicationYear, &book.AuthorID); err != nil {
			return nil, fmt.Errorf("error scanning book row: %w", err)
		}
		author.Books = append(author.Books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return author, nil
}

// GetAll retrieves all authors ordered by name
func (r *AuthorRepository) GetAll(ctx context.Context) ([]*models.Author, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("authors").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all authors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying authors: %w", err)
	}
	defer rows.Close()

	authors := []*models.Author{}
	for rows.Next() {
		author := &models.Author{}
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, fmt.Errorf("error scanning author row: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}

	return authors, nil
}

// Update updates an existing author
func (r *AuthorRepository) Update(ctx context.Context, author *models.Author) error {
	sql, args, err := r.sb.Update("authors").
		Set("name", author.Name).
		Where(squirrel.Eq{"id": author.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update author query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("authorID", author.ID).Msg("Error executing update author query")
		return fmt.Errorf("error updating author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}

// Delete deletes an author by ID. Dependent book rows are removed by the
// FK ON DELETE CASCADE on books.author_id.
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("authors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete author query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("authorID", id).Msg("Error executing delete author query")
		return fmt.Errorf("error deleting author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}

// Exists reports whether an author with the given ID exists
func (r *AuthorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("authors").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build author existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking author existence: %w", err)
	}

	return exists, nil
}
