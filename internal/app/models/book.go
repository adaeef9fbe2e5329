package models

// Book defines the book model based on the 'books' table.
// Deleting an author deletes their books (FK ON DELETE CASCADE).
type Book struct {
	ID              int64  `json:"id" db:"id" example:"1"`
	Title           string `json:"title" db:"title" example:"The Dispossessed"`
	PublicationYear int    `json:"publicationYear" db:"publication_year" example:"1974"`
	AuthorID        int64  `json:"authorId" db:"author_id" example:"1"`

	// Author is the owning author when loaded with the relation
	Author *Author `json:"author,omitempty"`
}
