// Package repositories contains the database access layer built on pgx and squirrel.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	AuthorRepository    *AuthorRepository
	BookRepository      *BookRepository
	LibraryRepository   *LibraryRepository
	LibrarianRepository *LibrarianRepository
	UserRepository      *UserRepository
	GroupRepository     *GroupRepository
	TokenRepository     *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AuthorRepository:    NewAuthorRepository(db),
		BookRepository:      NewBookRepository(db),
		LibraryRepository:   NewLibraryRepository(db),
		LibrarianRepository: NewLibrarianRepository(db),
		UserRepository:      NewUserRepository(db),
		GroupRepository:     NewGroupRepository(db),
		TokenRepository:     NewTokenRepository(db),
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation checks if the error is a PostgreSQL FK violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
