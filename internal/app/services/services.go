package services

import (
	"github.com/shelfapi/bookshelf/internal/app/repositories"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
	"github.com/shelfapi/bookshelf/internal/pkg/filestorage"
)

// Services bundles every service for dependency injection
type Services struct {
	AuthorService    *AuthorService
	BookService      *BookService
	LibraryService   *LibraryService
	LibrarianService *LibrarianService
	AuthService      *AuthService
	UserService      *UserService
}

// NewServices wires all services to their repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, fileStorage filestorage.FileStorage) *Services {
	return &Services{
		AuthorService:    NewAuthorService(repos.AuthorRepository),
		BookService:      NewBookService(repos.BookRepository, repos.AuthorRepository),
		LibraryService:   NewLibraryService(repos.LibraryRepository, repos.BookRepository),
		LibrarianService: NewLibrarianService(repos.LibrarianRepository, repos.LibraryRepository),
		AuthService:      NewAuthService(repos.UserRepository, repos.TokenRepository, repos.GroupRepository, jwtService),
		UserService:      NewUserService(repos.UserRepository, fileStorage),
	}
}
