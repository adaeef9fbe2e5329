package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/services"
	"github.com/shelfapi/bookshelf/internal/middleware"
)

// LibraryController handles library-related operations
type LibraryController struct {
	libraryService *services.LibraryService
}

// NewLibraryController creates a new LibraryController
func NewLibraryController(libraryService *services.LibraryService) *LibraryController {
	return &LibraryController{
		libraryService: libraryService,
	}
}

// ListLibraries retrieves all libraries
// @Summary List libraries
// @Description Retrieves all libraries ordered by name
// @Tags libraries
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LibraryResponse} "Libraries retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries [get]
func (c *LibraryController) ListLibraries(ctx *gin.Context) {
	libraries, err := c.libraryService.ListLibraries(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]*dto.LibraryResponse, 0, len(libraries))
	for _, library := range libraries {
		items = append(items, dto.NewLibraryResponse(library))
	}

	respondData(ctx, http.StatusOK, items)
}

// GetLibraryByID retrieves a library with its book set and librarian
// @Summary Get library details
// @Description Retrieves a library with its books and assigned librarian
// @Tags libraries
// @Accept json
// @Produce json
// @Param id path int true "Library ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LibraryResponse} "Library retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid library ID format"
// @Failure 404 {object} dto.ErrorResponse "Library not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries/{id} [get]
func (c *LibraryController) GetLibraryByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Library")
	if !ok {
		return
	}

	library, err := c.libraryService.GetLibraryByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.NewLibraryResponse(library))
}

// CreateLibrary handles library creation
// @Summary Create a new library
// @Description Creates a new library
// @Tags libraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLibraryRequest true "Library information"
// @Success 201 {object} dto.APIResponse{data=dto.LibraryResponse} "Library created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries [post]
func (c *LibraryController) CreateLibrary(ctx *gin.Context) {
	var req dto.CreateLibraryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	library, err := c.libraryService.CreateLibrary(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, dto.NewLibraryResponse(library))
}

// UpdateLibrary updates a library
// @Summary Update a library
// @Description Updates a library's name
// @Tags libraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Library ID" Format(int64) minimum(1)
// @Param request body dto.UpdateLibraryRequest true "Updated library information"
// @Success 200 {object} dto.APIResponse{data=dto.LibraryResponse} "Library updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Library not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries/{id}/update [put]
func (c *LibraryController) UpdateLibrary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Library")
	if !ok {
		return
	}

	var req dto.UpdateLibraryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	library, err := c.libraryService.UpdateLibrary(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.NewLibraryResponse(library))
}

// DeleteLibrary deletes a library
// @Summary Delete a library
// @Description Deletes a library. Book associations and the librarian assignment are removed with it.
// @Tags libraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Library ID" Format(int64) minimum(1)
// @Success 204 "Library deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid library ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Library not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries/{id}/delete [delete]
func (c *LibraryController) DeleteLibrary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Library")
	if !ok {
		return
	}

	if err := c.libraryService.DeleteLibrary(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddBook associates a book with a library
// @Summary Add a book to a library
// @Description Associates an existing book with a library. Idempotent.
// @Tags libraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Library ID" Format(int64) minimum(1)
// @Param bookId path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Book added to library"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Library or book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries/{id}/books/{bookId} [post]
func (c *LibraryController) AddBook(ctx *gin.Context) {
	libraryID, ok := parseIDParam(ctx, "id", "Library")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(ctx, "bookId", "Book")
	if !ok {
		return
	}

	if err := c.libraryService.AddBook(ctx, libraryID, bookID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Book added to library"})
}

// RemoveBook removes a book association from a library
// @Summary Remove a book from a library
// @Description Removes a book association from a library
// @Tags libraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Library ID" Format(int64) minimum(1)
// @Param bookId path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Book removed from library"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Library or association not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /libraries/{id}/books/{bookId} [delete]
func (c *LibraryController) RemoveBook(ctx *gin.Context) {
	libraryID, ok := parseIDParam(ctx, "id", "Library")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(ctx, "bookId", "Book")
	if !ok {
		return
	}

	if err := c.libraryService.RemoveBook(ctx, libraryID, bookID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Book removed from library"})
}
