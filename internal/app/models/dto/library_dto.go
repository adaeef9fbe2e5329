package dto

import "github.com/shelfapi/bookshelf/internal/app/models"

// CreateLibraryRequest represents the payload for creating a library
type CreateLibraryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateLibraryRequest represents the payload for updating a library
type UpdateLibraryRequest struct {
	Name string `json:"name" binding:"required"`
}

// LibraryResponse represents library information with its book set and librarian
type LibraryResponse struct {
	ID        int64              `json:"id" example:"1"`
	Name      string             `json:"name" example:"Central Library"`
	Books     []BookResponse     `json:"books,omitempty"`
	Librarian *LibrarianResponse `json:"librarian,omitempty"`
}

// NewLibraryResponse builds a LibraryResponse from a model
func NewLibraryResponse(library *models.Library) *LibraryResponse {
	if library == nil {
		return nil
	}

	resp := &LibraryResponse{
		ID:   library.ID,
		Name: library.Name,
	}

	for _, book := range library.Books {
		resp.Books = append(resp.Books, BookResponse{
			ID:              book.ID,
			Title:           book.Title,
			PublicationYear: book.PublicationYear,
			AuthorID:        book.AuthorID,
		})
	}

	if library.Librarian != nil {
		resp.Librarian = &LibrarianResponse{
			ID:        library.Librarian.ID,
			Name:      library.Librarian.Name,
			LibraryID: library.Librarian.LibraryID,
		}
	}

	return resp
}
