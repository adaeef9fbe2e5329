package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/services"
	"github.com/shelfapi/bookshelf/internal/middleware"
)

// LibrarianController handles librarian-related operations
type LibrarianController struct {
	librarianService *services.LibrarianService
}

// NewLibrarianController creates a new LibrarianController
func NewLibrarianController(librarianService *services.LibrarianService) *LibrarianController {
	return &LibrarianController{
		librarianService: librarianService,
	}
}

func newLibrarianResponse(librarian *models.Librarian) dto.LibrarianResponse {
	resp := dto.LibrarianResponse{
		ID:        librarian.ID,
		Name:      librarian.Name,
		LibraryID: librarian.LibraryID,
	}
	if librarian.Library != nil {
		resp.LibraryName = librarian.Library.Name
	}
	return resp
}

// ListLibrarians retrieves all librarians
// @Summary List librarians
// @Description Retrieves all librarians with their libraries
// @Tags librarians
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.LibrarianResponse} "Librarians retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /librarians [get]
func (c *LibrarianController) ListLibrarians(ctx *gin.Context) {
	librarians, err := c.librarianService.ListLibrarians(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.LibrarianResponse, 0, len(librarians))
	for _, librarian := range librarians {
		items = append(items, newLibrarianResponse(librarian))
	}

	respondData(ctx, http.StatusOK, items)
}

// GetLibrarianByID retrieves a librarian by ID
// @Summary Get librarian details
// @Description Retrieves a librarian with the assigned library
// @Tags librarians
// @Accept json
// @Produce json
// @Param id path int true "Librarian ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LibrarianResponse} "Librarian retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid librarian ID format"
// @Failure 404 {object} dto.ErrorResponse "Librarian not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /librarians/{id} [get]
func (c *LibrarianController) GetLibrarianByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Librarian")
	if !ok {
		return
	}

	librarian, err := c.librarianService.GetLibrarianByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, newLibrarianResponse(librarian))
}

// CreateLibrarian assigns a librarian to a library
// @Summary Assign a librarian
// @Description Assigns a librarian to a library. A library can hold at most one librarian.
// @Tags librarians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLibrarianRequest true "Librarian information"
// @Success 201 {object} dto.APIResponse{data=dto.LibrarianResponse} "Librarian assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Library not found"
// @Failure 409 {object} dto.ErrorResponse "Library already has a librarian"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /librarians [post]
func (c *LibrarianController) CreateLibrarian(ctx *gin.Context) {
	var req dto.CreateLibrarianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	librarian, err := c.librarianService.CreateLibrarian(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, newLibrarianResponse(librarian))
}

// UpdateLibrarian updates a librarian
// @Summary Update a librarian
// @Description Updates a librarian's name
// @Tags librarians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Librarian ID" Format(int64) minimum(1)
// @Param request body dto.UpdateLibrarianRequest true "Updated librarian information"
// @Success 200 {object} dto.APIResponse{data=dto.LibrarianResponse} "Librarian updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Librarian not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /librarians/{id}/update [put]
func (c *LibrarianController) UpdateLibrarian(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Librarian")
	if !ok {
		return
	}

	var req dto.UpdateLibrarianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	librarian, err := c.librarianService.UpdateLibrarian(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, newLibrarianResponse(librarian))
}

// DeleteLibrarian removes a librarian assignment
// @Summary Delete a librarian
// @Description Removes a librarian assignment from a library
// @Tags librarians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Librarian ID" Format(int64) minimum(1)
// @Success 204 "Librarian deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid librarian ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Librarian not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /librarians/{id}/delete [delete]
func (c *LibrarianController) DeleteLibrarian(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Librarian")
	if !ok {
		return
	}

	if err := c.librarianService.DeleteLibrarian(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
