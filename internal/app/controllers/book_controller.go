package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/app/services"
	"github.com/shelfapi/bookshelf/internal/middleware"
	"github.com/shelfapi/bookshelf/internal/pkg/helpers"
)

// BookController handles book-related operations
type BookController struct {
	bookService *services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService *services.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

func newBookResponse(book *models.Book) dto.BookResponse {
	resp := dto.BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		PublicationYear: book.PublicationYear,
		AuthorID:        book.AuthorID,
	}
	if book.Author != nil {
		resp.AuthorName = book.Author.Name
	}
	return resp
}

// ListBooks retrieves books with optional filtering
// @Summary List books
// @Description Retrieves books with optional author and title search filters
// @Tags books
// @Accept json
// @Produce json
// @Param author_id query int false "Filter by author ID"
// @Param search query string false "Case-insensitive title substring"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Books retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := &dto.BookFilter{
		Search: ctx.Query("search"),
		Page:   page,
		Size:   size,
	}
	if authorIDStr := ctx.Query("author_id"); authorIDStr != "" {
		authorID, err := strconv.ParseInt(authorIDStr, 10, 64)
		if err != nil || authorID < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid author_id filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.AuthorID = authorID
	}

	books, total, err := c.bookService.ListBooks(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.BookResponse, 0, len(books))
	for _, book := range books {
		items = append(items, newBookResponse(book))
	}

	respondData(ctx, http.StatusOK, dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	})
}

// GetBookByID retrieves a book by ID
// @Summary Get book details
// @Description Retrieves detailed information about a specific book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid book ID format"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [get]
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Book")
	if !ok {
		return
	}

	book, err := c.bookService.GetBookByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, newBookResponse(book))
}

// CreateBook handles book creation
// @Summary Create a new book
// @Description Creates a new book. The publication year must not be in the future.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=dto.BookResponse} "Book created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Author not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	book, err := c.bookService.CreateBook(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, newBookResponse(book))
}

// UpdateBook replaces a book's fields
// @Summary Update a book
// @Description Fully updates an existing book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Param request body dto.UpdateBookRequest true "Updated book information"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id}/update [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Book")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	book, err := c.bookService.UpdateBook(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, newBookResponse(book))
}

// PatchBook partially updates a book
// @Summary Partially update a book
// @Description Updates only the provided fields of an existing book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Param request body dto.PatchBookRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id}/update [patch]
func (c *BookController) PatchBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Book")
	if !ok {
		return
	}

	var req dto.PatchBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}

	book, err := c.bookService.PatchBook(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, newBookResponse(book))
}

// DeleteBook deletes a book
// @Summary Delete a book
// @Description Deletes a book and its library associations
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Success 204 "Book deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid book ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id}/delete [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Book")
	if !ok {
		return
	}

	if err := c.bookService.DeleteBook(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
