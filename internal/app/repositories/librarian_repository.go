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

// ILibrarianRepository defines the interface for librarian database operations
type ILibrarianRepository interface {
	Create(ctx context.Context, librarian *models.Librarian) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Librarian, error)
	GetByLibraryID(ctx context.Context, libraryID int64) (*models.Librarian, error)
	GetAll(ctx context.Context) ([]*models.Librarian, error)
	Update(ctx context.Context, librarian *models.Librarian) error
	Delete(ctx context.Context, id int64) error
}

// LibrarianRepository handles librarian database operations
type LibrarianRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLibrarianRepository creates a new LibrarianRepository
func NewLibrarianRepository(db *pgxpool.Pool) *LibrarianRepository {
	return &LibrarianRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new librarian. The UNIQUE constraint on library_id
// enforces one librarian per library.
func (r *LibrarianRepository) Create(ctx context.Context, librarian *models.Librarian) (int64, error) {
	sql, args, err := r.sb.Insert("librarians").
		Columns("name", "library_id").
		Values(librarian.Name, librarian.LibraryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create librarian query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrLibrarianAlreadyAssigned
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrLibraryNotFound
		}
		logger.Error().Err(err).Msg("Error executing create librarian query")
		return 0, fmt.Errorf("error creating librarian: %w", err)
	}

	return id, nil
}

// GetByID retrieves a librarian by ID together with the library name
func (r *LibrarianRepository) GetByID(ctx context.Context, id int64) (*models.Librarian, error) {
	sql, args, err := r.sb.Select("l.id", "l.name", "l.library_id", "lib.name").
		From("librarians l").
		Join("libraries lib ON lib.id = l.library_id").
		Where(squirrel.Eq{"l.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get librarian query: %w", err)
	}

	librarian := &models.Librarian{Library: &models.Library{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&librarian.ID, &librarian.Name, &librarian.LibraryID, &librarian.Library.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLibrarianNotFound
		}
		logger.Error().Err(err).Int64("librarianID", id).Msg("Error scanning librarian row")
		return nil, fmt.Errorf("error getting librarian by ID: %w", err)
	}
	librarian.Library.ID = librarian.LibraryID

	return librarian, nil
}

// GetByLibraryID retrieves the librarian assigned to a library
func (r *LibrarianRepository) GetByLibraryID(ctx context.Context, libraryID int64) (*models.Librarian, error) {
	sql, args, err := r.sb.Select("id", "name", "library_id").
		From("librarians").
		Where(squirrel.Eq{"library_id": libraryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get librarian by library query: %w", err)
	}

	librarian := &models.Librarian{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&librarian.ID, &librarian.Name, &librarian.LibraryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLibrarianNotFound
		}
		return nil, fmt.Errorf("error getting librarian by library ID: %w", err)
	}

	return librarian, nil
}

// GetAll retrieves all librarians ordered by name
func (r *LibrarianRepository) GetAll(ctx context.Context) ([]*models.Librarian, error) {
	sql, args, err := r.sb.Select("l.id", "l.name", "l.library_id", "lib.name").
		From("librarians l").
		Join("libraries lib ON lib.id = l.library_id").
		OrderBy("l.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all librarians query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying librarians: %w", err)
	}
	defer rows.Close()

	librarians := []*models.Librarian{}
	for rows.Next() {
		librarian := &models.Librarian{Library: &models.Library{}}
		if err := rows.Scan(&librarian.ID, &librarian.Name, &librarian.LibraryID, &librarian.Library.Name); err != nil {
			return nil, fmt.Errorf("error scanning librarian row: %w", err)
		}
		librarian.Library.ID = librarian.LibraryID
		librarians = append(librarians, librarian)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating librarian rows: %w", err)
	}

	return librarians, nil
}

// Update updates a librarian's name
func (r *LibrarianRepository) Update(ctx context.Context, librarian *models.Librarian) error {
	sql, args, err := r.sb.Update("librarians").
		Set("name", librarian.Name).
		Where(squirrel.Eq{"id": librarian.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update librarian query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("librarianID", librarian.ID).Msg("Error executing update librarian query")
		return fmt.Errorf("error updating librarian: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLibrarianNotFound
	}

	return nil
}

// Delete deletes a librarian by ID
func (r *LibrarianRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("librarians").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete librarian query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("librarianID", id).Msg("Error executing delete librarian query")
		return fmt.Errorf("error deleting librarian: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLibrarianNotFound
	}

	return nil
}
