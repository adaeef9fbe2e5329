package models

// Library defines the library model based on the 'libraries' table.
// Books are attached through the 'library_books' join table.
type Library struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Central Library"`

	// Books holds the library's book set when loaded with the relation
	Books []*Book `json:"books,omitempty"`
	// Librarian is the assigned librarian when loaded with the relation
	Librarian *Librarian `json:"librarian,omitempty"`
}
