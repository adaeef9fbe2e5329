package dto

// CreateBookRequest represents the payload for creating a book
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required"`
	PublicationYear int    `json:"publicationYear" binding:"required"`
	AuthorID        int64  `json:"authorId" binding:"required,min=1"`
}

// UpdateBookRequest represents a full book update (PUT)
type UpdateBookRequest struct {
	Title           string `json:"title" binding:"required"`
	PublicationYear int    `json:"publicationYear" binding:"required"`
	AuthorID        int64  `json:"authorId" binding:"required,min=1"`
}

// PatchBookRequest represents a partial book update (PATCH).
// Nil fields are left unchanged.
type PatchBookRequest struct {
	Title           *string `json:"title,omitempty"`
	PublicationYear *int    `json:"publicationYear,omitempty"`
	AuthorID        *int64  `json:"authorId,omitempty"`
}

// BookFilter holds list filtering options for books
type BookFilter struct {
	AuthorID int64
	Search   string
	Page     int
	Size     int
}

// BookResponse represents book information in API responses
type BookResponse struct {
	ID              int64  `json:"id" example:"1"`
	Title           string `json:"title" example:"The Dispossessed"`
	PublicationYear int    `json:"publicationYear" example:"1974"`
	AuthorID        int64  `json:"authorId" example:"1"`
	AuthorName      string `json:"authorName,omitempty" example:"Ursula K. Le Guin"`
}
