package dto

import "github.com/shelfapi/bookshelf/internal/app/models"

// CreateAuthorRequest represents the payload for creating an author
type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateAuthorRequest represents the payload for updating an author
type UpdateAuthorRequest struct {
	Name string `json:"name" binding:"required"`
}

// AuthorResponse represents author information with the nested book list
type AuthorResponse struct {
	ID    int64          `json:"id" example:"1"`
	Name  string         `json:"name" example:"Ursula K. Le Guin"`
	Books []BookResponse `json:"books,omitempty"`
}

// NewAuthorResponse builds an AuthorResponse from a model, nesting its books
func NewAuthorResponse(author *models.Author) *AuthorResponse {
	if author == nil {
		return nil
	}

	resp := &AuthorResponse{
		ID:   author.ID,
		Name: author.Name,
	}

	for _, book := range author.Books {
		resp.Books = append(resp.Books, BookResponse{
			ID:              book.ID,
			Title:           book.Title,
			PublicationYear: book.PublicationYear,
			AuthorID:        book.AuthorID,
		})
	}

	return resp
}
