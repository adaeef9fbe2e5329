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

// ILibraryRepository defines the interface for library database operations
type ILibraryRepository interface {
	Create(ctx context.Context, library *models.Library) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Library, error)
	GetWithRelations(ctx context.Context, id int64) (*models.Library, error)
	GetAll(ctx context.Context) ([]*models.Library, error)
	Update(ctx context.Context, library *models.Library) error
	Delete(ctx context.Context, id int64) error
	AddBook(ctx context.Context, libraryID, bookID int64) error
	RemoveBook(ctx context.Context, libraryID, bookID int64) error
	GetBooks(ctx context.Context, libraryID int64) ([]*models.Book, error)
}

// LibraryRepository handles library database operations, including the
// library_books join table.
type LibraryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(db *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new library
func (r *LibraryRepository) Create(ctx context.Context, library *models.Library) (int64, error) {
	sql, args, err := r.sb.Insert("libraries").
		Columns("name").
		Values(library.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create library query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create library query")
		return 0, fmt.Errorf("error creating library: %w", err)
	}

	return id, nil
}

// GetByID retrieves a library by ID
func (r *LibraryRepository) GetByID(ctx context.Context, id int64) (*models.Library, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("libraries").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get library query: %w", err)
	}

	library := &models.Library{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&library.ID, &library.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLibraryNotFound
		}
		logger.Error().Err(err).Int64("libraryID", id).Msg("Error scanning library row")
		return nil, fmt.Errorf("error getting library by ID: %w", err)
	}

	return library, nil
}

// GetWithRelations retrieves a library with its book set and librarian
func (r *LibraryRepository) GetWithRelations(ctx context.Context, id int64) (*models.Library, error) {
	library, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := r.GetBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	library.Books = books

	sql, args, err := r.sb.Select("id", "name", "library_id").
		From("librarians").
		Where(squirrel.Eq{"library_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build librarian query: %w", err)
	}

	librarian := &models.Librarian{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&librarian.ID, &librarian.Name, &librarian.LibraryID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("error getting librarian for library: %w", err)
		}
		// A library without a librarian is fine
	} else {
		library.Librarian = librarian
	}

	return library, nil
}

// GetAll retrieves all libraries ordered by name
func (r *LibraryRepository) GetAll(ctx context.Context) ([]*models.Library, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("libraries").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all libraries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying libraries: %w", err)
	}
	defer rows.Close()

	libraries := []*models.Library{}
	for rows.Next() {
		library := &models.Library{}
		if err := rows.Scan(&library.ID, &library.Name); err != nil {
			return nil, fmt.Errorf("error scanning library row: %w", err)
		}
		libraries = append(libraries, library)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating library rows: %w", err)
	}

	return libraries, nil
}

// Update updates an existing library
func (r *LibraryRepository) Update(ctx context.Context, library *models.Library) error {
	sql, args, err := r.sb.Update("libraries").
		Set("name", library.Name).
		Where(squirrel.Eq{"id": library.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update library query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("libraryID", library.ID).Msg("Error executing update library query")
		return fmt.Errorf("error updating library: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLibraryNotFound
	}

	return nil
}

// Delete deletes a library by ID. Join rows and the librarian row cascade.
func (r *LibraryRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("libraries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete library query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("libraryID", id).Msg("Error executing delete library query")
		return fmt.Errorf("error deleting library: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLibraryNotFound
	}

	return nil
}

// AddBook attaches a book to a library. Adding the same book twice is a no-op.
func (r *LibraryRepository) AddBook(ctx context.Context, libraryID, bookID int64) error {
	sql, args, err := r.sb.Insert("library_books").
		Columns("library_id", "book_id").
		Values(libraryID, bookID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add book query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("libraryID", libraryID).Int64("bookID", bookID).Msg("Error adding book to library")
		return fmt.Errorf("error adding book to library: %w", err)
	}

	return nil
}

// RemoveBook detaches a book from a library
func (r *LibraryRepository) RemoveBook(ctx context.Context, libraryID, bookID int64) error {
	sql, args, err := r.sb.Delete("library_books").
		Where(squirrel.Eq{"library_id": libraryID, "book_id": bookID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove book query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("libraryID", libraryID).Int64("bookID", bookID).Msg("Error removing book from library")
		return fmt.Errorf("error removing book from library: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// GetBooks retrieves the book set of a library through the join table
func (r *LibraryRepository) GetBooks(ctx context.Context, libraryID int64) ([]*models.Book, error) {
	sql, args, err := r.sb.Select("b.id", "b.title", "b.publication_year", "b.author_id").
		From("books b").
		Join("library_books lb ON lb.book_id = b.id").
		Where(squirrel.Eq{"lb.library_id": libraryID}).
		OrderBy("b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build library books query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying library books: %w", err)
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		book := &models.Book{}
		if err := rows.Scan(&book.ID, &book.Title, &book.PublicationYear, &book.AuthorID); err != nil {
			return nil, fmt.Errorf("error scanning book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}
