package models

// Permission codenames for the book management surface
const (
	PermCanViewBook   = "can_view_book"
	PermCanCreateBook = "can_create_book"
	PermCanEditBook   = "can_edit_book"
	PermCanDeleteBook = "can_delete_book"
)

// Default group names seeded at startup
const (
	GroupViewers = "Viewers"
	GroupEditors = "Editors"
	GroupAdmins  = "Admins"
)

// Group defines the group model based on the 'groups' table
type Group struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Editors"`

	// Permissions holds the group's permission set when loaded
	Permissions []*Permission `json:"permissions,omitempty"`
}

// Permission defines the permission model based on the 'permissions' table
type Permission struct {
	ID       int64  `json:"id" db:"id" example:"1"`
	Codename string `json:"codename" db:"codename" example:"can_edit_book"`
	Name     string `json:"name" db:"name" example:"Can edit book"`
}
