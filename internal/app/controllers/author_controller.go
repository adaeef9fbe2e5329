package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/services"
	"github.com/shelfapi/bookshelf/internal/middleware"
)

// AuthorController handles author-related operations
type AuthorController struct {
	authorService *services.AuthorService
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(authorService *services.AuthorService) *AuthorController {
	return &AuthorController{
		authorService: authorService,
	}
}

// ListAuthors retrieves all authors
// @Summary List authors
// @Description Retrieves all authors ordered by name
// @Tags authors
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AuthorResponse} "Authors retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /authors [get]
func (c *AuthorController) ListAuthors(ctx *gin.Context) {
	authors, err := c.authorService.ListAuthors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]*dto.AuthorResponse, 0, len(authors))
	for _, author := range authors {
		items = append(items, dto.NewAuthorResponse(author))
	}

	respondData(ctx, http.StatusOK, items)
}

// GetAuthorByID retrieves an author with the author's books
// @Summary Get author details
// @Description Retrieves an author together with the author's books
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.AuthorResponse} "Author retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid author ID format"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /authors/{id} [get]
func (c *AuthorController) GetAuthorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Author")
	if !ok {
		return
	}

	author, err := c.authorService.GetAuthorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.NewAuthorResponse(author))
}

// CreateAuthor handles author creation
// @Summary Create a new author
// @Description Creates a new author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAuthorRequest true "Author information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthorResponse} "Author created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /authors [post]
func (c *AuthorController) CreateAuthor(ctx *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	author, err := c.authorService.CreateAuthor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, dto.NewAuthorResponse(author))
}

// UpdateAuthor updates an author
// @Summary Update an author
// @Description Updates an author's name
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID" Format(int64) minimum(1)
// @Param request body dto.UpdateAuthorRequest true "Updated author information"
// @Success 200 {object} dto.APIResponse{data=dto.AuthorResponse} "Author updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /authors/{id}/update [put]
func (c *AuthorController) UpdateAuthor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Author")
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	author, err := c.authorService.UpdateAuthor(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.NewAuthorResponse(author))
}

// DeleteAuthor deletes an author and the author's books
// @Summary Delete an author
// @Description Deletes an author. The author's books are deleted with it.
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID" Format(int64) minimum(1)
// @Success 204 "Author deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid author ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /authors/{id}/delete [delete]
func (c *AuthorController) DeleteAuthor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Author")
	if !ok {
		return
	}

	if err := c.authorService.DeleteAuthor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
