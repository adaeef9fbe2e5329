package models

// Author defines the author model based on the 'authors' table
type Author struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Ursula K. Le Guin"`

	// Books holds the author's books when loaded with the relation
	Books []*Book `json:"books,omitempty"`
}
