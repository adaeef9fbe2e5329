package models

// Librarian defines the librarian model based on the 'librarians' table.
// library_id carries a UNIQUE constraint, one librarian per library.
type Librarian struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Name      string `json:"name" db:"name" example:"Jorge Luis"`
	LibraryID int64  `json:"libraryId" db:"library_id" example:"1"`

	// Library is the managed library when loaded with the relation
	Library *Library `json:"library,omitempty"`
}
