package dto

// CreateLibrarianRequest represents the payload for assigning a librarian to a library
type CreateLibrarianRequest struct {
	Name      string `json:"name" binding:"required"`
	LibraryID int64  `json:"libraryId" binding:"required,min=1"`
}

// UpdateLibrarianRequest represents the payload for updating a librarian
type UpdateLibrarianRequest struct {
	Name string `json:"name" binding:"required"`
}

// LibrarianResponse represents librarian information in API responses
type LibrarianResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Jorge Luis"`
	LibraryID   int64  `json:"libraryId" example:"1"`
	LibraryName string `json:"libraryName,omitempty" example:"Central Library"`
}
